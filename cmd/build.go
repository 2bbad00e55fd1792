package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
	"github.com/draftline/rosterlink/internal/store"
	"github.com/draftline/rosterlink/internal/tabio"
)

var (
	buildPrimaryPath string
	buildStatsPath   string
	buildLegacyPath  string
	buildOutPath     string
	buildDBPath      string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the canonical registry from per-source record sets",
	Long: `Runs the three ordered bootstrap passes, most authoritative source first:

Pass 1: primary platform records seed canonical players, their IDs become canonical IDs.
Pass 2: stats provider records enrich by identifier lookup, creating players on a miss.
Pass 3: legacy index records fill gaps by identifier, then name, then source-only stubs.

Writes the registry document (players, alias maps, build report) to --out;
format follows the extension (.yaml/.yml for YAML, otherwise JSON).`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "build"))

		primary, err := tabio.ReadRecords(buildPrimaryPath, model.SourcePrimary)
		if err != nil {
			return eris.Wrap(err, "build: read primary records")
		}

		var stats, legacy []model.SourceRecord
		if buildStatsPath != "" {
			if stats, err = tabio.ReadRecords(buildStatsPath, model.SourceStats); err != nil {
				return eris.Wrap(err, "build: read stats records")
			}
		}
		if buildLegacyPath != "" {
			if legacy, err = tabio.ReadRecords(buildLegacyPath, model.SourceLegacy); err != nil {
				return eris.Wrap(err, "build: read legacy records")
			}
		}

		reg, report := resolve.NewBuilder().Build(primary, stats, legacy)

		if err := tabio.WriteRegistry(buildOutPath, tabio.NewRegistryDoc(reg, report)); err != nil {
			return eris.Wrap(err, "build: write registry")
		}
		log.Info("registry written",
			zap.String("path", buildOutPath),
			zap.Int("players", len(reg.Players)))

		if buildDBPath != "" {
			st, err := store.NewSQLite(buildDBPath)
			if err != nil {
				return eris.Wrap(err, "build: open store")
			}
			defer st.Close() //nolint:errcheck

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "build: migrate store")
			}
			runID, err := st.SaveRegistry(ctx, reg, report)
			if err != nil {
				return eris.Wrap(err, "build: save snapshot")
			}
			log.Info("snapshot persisted", zap.String("run_id", runID))
		}

		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildPrimaryPath, "primary", "", "primary platform records CSV (required)")
	buildCmd.Flags().StringVar(&buildStatsPath, "stats", "", "stats provider records CSV")
	buildCmd.Flags().StringVar(&buildLegacyPath, "legacy", "", "legacy index records CSV")
	buildCmd.Flags().StringVar(&buildOutPath, "out", "registry.json", "registry document output path")
	buildCmd.Flags().StringVar(&buildDBPath, "db", "", "optional SQLite path for the snapshot")
	_ = buildCmd.MarkFlagRequired("primary")

	rootCmd.AddCommand(buildCmd)
}
