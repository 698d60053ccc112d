package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"chimera/internal/narrative"
	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"
	"chimera/internal/presentation"
	"chimera/internal/presentation/scenes"
	"chimera/internal/tui"
	"chimera/pkg/platform/clock"
)

func playCmd() *cobra.Command {
	var (
		subject string
		speed   float64
		logFile string
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Run the presentation in the terminal",
		Long: "Run the presentation in the terminal.\n\n" +
			"Keys: enter/space start, r reset once complete, q quit.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("subject") {
				cfg.DefaultSubject = subject
			}
			if cmd.Flags().Changed("speed") {
				if speed <= 0 {
					return fmt.Errorf("--speed must be positive, got %v", speed)
				}
				cfg.Speed = speed
			}

			log, closeLog, err := playLogger(logFile, cfg.LogLevel)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := cmd.Context()
			generator := narrative.FromKey(ctx, cfg.APIKey, cfg.NarrativeModel, log, nil)
			seq := presentation.New(presentation.Options{
				Clock:   clock.Scale(clock.Real{}, cfg.Speed),
				Catalog: scenes.NewCatalog(generator),
				Subject: scenes.Subject{Name: cfg.DefaultSubject, Verified: true, Score: scenes.FinalRiskScore},
				Logger:  log,
				Label:   "terminal",
			})
			defer seq.Close()

			events, cancel := seq.Subscribe(256)
			defer cancel()
			return tui.Run(ctx, seq, events)
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "Name of the subject to screen (default from CHIMERA_SUBJECT)")
	cmd.Flags().Float64Var(&speed, "speed", 1, "Playback speed multiplier")
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file; the screen is owned by the player")
	return cmd
}

// playLogger writes to a file when asked. The player owns the terminal, so the
// default is to discard.
func playLogger(path, level string) (*slog.Logger, func(), error) {
	if path == "" {
		log, err := logger.NewWithWriter(io.Discard, level, "text")
		return log, func() {}, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	log, err := logger.NewWithWriter(f, level, "text")
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return log, func() { _ = f.Close() }, nil
}
