package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/chance/internal/app"
	"github.com/abhisek/chance/internal/catalog"
	"github.com/abhisek/chance/internal/cue"
	"github.com/abhisek/chance/internal/logging"
	"github.com/abhisek/chance/internal/plain"
	"github.com/abhisek/chance/internal/quiz"
)

// runApp resolves settings, builds the controller and launches either the
// TUI or the line-oriented mode.
func runApp(cmd *cobra.Command, plainMode bool) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()

	cat := catalog.Default()
	ctrl := quiz.New(cat, quiz.Options{
		AdvanceDelay: cfg.AdvanceDelay,
		Logger:       log,
	})

	var player cue.Player = cue.Silent{}
	if cfg.Sound {
		player = cue.NewBell(os.Stderr)
	}
	sound := cue.NewSafe(player, log)

	log.Info("starting",
		zap.String("version", version),
		zap.Bool("plain", plainMode),
		zap.Int("experiments", cat.Len()),
		zap.Duration("delay", cfg.AdvanceDelay),
		zap.Bool("sound", cfg.Sound),
	)

	if plainMode {
		return plain.Run(cmd.Context(), plain.Options{
			In:         cmd.InOrStdin(),
			Out:        cmd.OutOrStdout(),
			Controller: ctrl,
			Cue:        sound,
			Logger:     log,
			NoColor:    color.NoColor,
		})
	}

	return app.Run(app.Options{
		Catalog:    cat,
		Controller: ctrl,
		Cue:        sound,
		Logger:     log,
	})
}
