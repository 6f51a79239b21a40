package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/chance/internal/config"
)

var rootCmd = &cobra.Command{
	Use:           "chance",
	Short:         "Probability lab for the terminal",
	Long:          "Chance is a terminal lab where you decide whether each outcome is impossible, possible or certain.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	addConfigFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

func addConfigFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.Duration("delay", 0, "Time answer feedback stays on screen (overrides CHANCE_ADVANCE_DELAY)")
	f.Bool("no-sound", false, "Disable the answer cue (overrides CHANCE_SOUND)")
	f.String("log-file", "", "Write JSON logs to this file (overrides CHANCE_LOG_FILE)")
	f.String("log-level", "", "Log level: debug, info, warn or error (overrides CHANCE_LOG_LEVEL)")
}

// resolveConfig loads settings from the environment and applies any flags
// the user set explicitly on top.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	return applyFlags(cmd, cfg)
}

func applyFlags(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("delay") {
		d, _ := flags.GetDuration("delay")
		cfg.AdvanceDelay = d
	}
	if flags.Changed("no-sound") {
		off, _ := flags.GetBool("no-sound")
		cfg.Sound = !off
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
