package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"chimera/internal/narrative"
	"chimera/internal/platform/config"
	"chimera/internal/platform/logger"
	"chimera/internal/presentation/scenes"
)

func narrativeCmd() *cobra.Command {
	var (
		name     string
		score    int
		verified bool
	)

	cmd := &cobra.Command{
		Use:   "narrative",
		Short: "Generate one report narrative and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if score < 0 || score > 100 {
				return fmt.Errorf("--score must be between 0 and 100, got %d", score)
			}
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("name") {
				name = cfg.DefaultSubject
			}
			log, err := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel, "text")
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			generator := narrative.FromKey(ctx, cfg.APIKey, cfg.NarrativeModel, log, nil)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), generator.Generate(ctx, name, verified, score))
			return err
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Subject name (default from CHIMERA_SUBJECT)")
	cmd.Flags().IntVar(&score, "score", scenes.FinalRiskScore, "AML risk score, 0-100")
	cmd.Flags().BoolVar(&verified, "verified", true, "Whether biometric verification passed")
	return cmd
}
