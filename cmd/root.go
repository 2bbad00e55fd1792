package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "rosterlink",
	Short: "Canonical player registry builder",
	Long:  "Resolves player identity records from the primary platform, stats provider, and legacy index into one canonical registry, with audit, review, and override stages.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
