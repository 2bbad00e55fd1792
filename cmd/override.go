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
	overrideFilePath      string
	overrideSource        string
	overrideRegistryPath  string
	overrideLeftPath      string
	overrideLeftSource    string
	overrideRightPath     string
	overrideRightSource   string
	overrideKey           string
	overrideOutPath       string
	overrideSuspiciousOut string
	overrideDBPath        string
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Apply human-confirmed corrections and re-run the audit",
	Long: `Consumes reviewer decisions (XLSX workbook or CSV table), rebinds the
affected identifier mappings ahead of whatever the automated passes decided,
remaps the left table, re-runs the deterministic join, and reports before and
after audit counts. Applying the same override set twice yields an identical
registry and report.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "override"))

		source, err := model.ParseSource(overrideSource)
		if err != nil {
			return eris.Wrap(err, "override")
		}
		overrides, err := readOverrides(overrideFilePath, source)
		if err != nil {
			return eris.Wrap(err, "override: read overrides")
		}

		doc, err := tabio.ReadRegistry(overrideRegistryPath)
		if err != nil {
			return eris.Wrap(err, "override: read registry")
		}
		reg := doc.Registry()

		left, right, key, err := loadJoinInputs(
			overrideLeftPath, overrideLeftSource, overrideRightPath, overrideRightSource, overrideKey)
		if err != nil {
			return eris.Wrap(err, "override")
		}

		res := resolve.ApplyOverrides(reg, overrides, left, right, key)

		if err := tabio.WriteRegistry(overrideOutPath, tabio.NewRegistryDoc(reg, doc.Report)); err != nil {
			return eris.Wrap(err, "override: write registry")
		}
		log.Info("corrected registry written",
			zap.String("path", overrideOutPath),
			zap.Int("overrides", len(overrides)),
			zap.Int("rows_changed", res.Report.RowsChanged),
			zap.Int("still_suspicious", res.Report.StillSuspect))

		if overrideSuspiciousOut != "" {
			if err := tabio.WriteSuspicious(overrideSuspiciousOut, res.Join.SuspiciousTable()); err != nil {
				return eris.Wrap(err, "override: write suspicious table")
			}
		}

		if overrideDBPath != "" {
			st, err := store.NewSQLite(overrideDBPath)
			if err != nil {
				return eris.Wrap(err, "override: open store")
			}
			defer st.Close() //nolint:errcheck

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "override: migrate store")
			}
			auditID, err := st.RecordAudit(ctx, "override", res.Report.After)
			if err != nil {
				return eris.Wrap(err, "override: record audit")
			}
			if err := st.RecordOverrides(ctx, auditID, overrides); err != nil {
				return eris.Wrap(err, "override: record overrides")
			}
		}

		return nil
	},
}

func init() {
	overrideCmd.Flags().StringVar(&overrideFilePath, "overrides", "", "override table (XLSX workbook or CSV, required)")
	overrideCmd.Flags().StringVar(&overrideSource, "source", "stats", "ID space the overrides apply to")
	overrideCmd.Flags().StringVar(&overrideRegistryPath, "registry", "registry.json", "registry document path")
	overrideCmd.Flags().StringVar(&overrideLeftPath, "left", "", "left record set CSV (required)")
	overrideCmd.Flags().StringVar(&overrideLeftSource, "left-source", "stats", "left set source name")
	overrideCmd.Flags().StringVar(&overrideRightPath, "right", "", "right record set CSV (required)")
	overrideCmd.Flags().StringVar(&overrideRightSource, "right-source", "primary", "right set source name")
	overrideCmd.Flags().StringVar(&overrideKey, "key", "primary_id", "shared identifier field to join on")
	overrideCmd.Flags().StringVar(&overrideOutPath, "out", "registry.json", "corrected registry output path")
	overrideCmd.Flags().StringVar(&overrideSuspiciousOut, "suspicious", "", "post-override suspicious subset CSV")
	overrideCmd.Flags().StringVar(&overrideDBPath, "db", "", "optional SQLite path for the audit trail")
	_ = overrideCmd.MarkFlagRequired("overrides")
	_ = overrideCmd.MarkFlagRequired("left")
	_ = overrideCmd.MarkFlagRequired("right")

	rootCmd.AddCommand(overrideCmd)
}
