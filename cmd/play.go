package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a round of experiments",
	RunE: func(cmd *cobra.Command, args []string) error {
		plainMode, _ := cmd.Flags().GetBool("plain")
		return runApp(cmd, plainMode)
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Use line-oriented prompts instead of the full-screen UI")
}
