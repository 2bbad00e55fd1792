package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/resolve"
	"github.com/draftline/rosterlink/internal/store"
	"github.com/draftline/rosterlink/internal/tabio"
)

var (
	auditLeftPath       string
	auditLeftSource     string
	auditRightPath      string
	auditRightSource    string
	auditKey            string
	auditSuspiciousPath string
	auditDBPath         string
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Join two record sets on a shared identifier and flag disagreements",
	Long: `Left-joins the two tables on the shared identifier field and computes
name_match/date_match flags over normalized keys. A row is suspicious when a
match exists but either flag is false. Non-zero suspicious counts are a
warning, not a failure; a missing identifier column is fatal.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		log := zap.L().With(zap.String("command", "audit"))

		left, right, key, err := loadJoinInputs(
			auditLeftPath, auditLeftSource, auditRightPath, auditRightSource, auditKey)
		if err != nil {
			return eris.Wrap(err, "audit")
		}

		res := resolve.Join(left, right, key)

		if auditSuspiciousPath != "" {
			if err := tabio.WriteSuspicious(auditSuspiciousPath, res.SuspiciousTable()); err != nil {
				return eris.Wrap(err, "audit: write suspicious table")
			}
			log.Info("suspicious table written",
				zap.String("path", auditSuspiciousPath),
				zap.Int("rows", len(res.Suspicious)))
		}

		if auditDBPath != "" {
			st, err := store.NewSQLite(auditDBPath)
			if err != nil {
				return eris.Wrap(err, "audit: open store")
			}
			defer st.Close() //nolint:errcheck

			if err := st.Migrate(ctx); err != nil {
				return eris.Wrap(err, "audit: migrate store")
			}
			if _, err := st.RecordAudit(ctx, "audit", res.Summary); err != nil {
				return eris.Wrap(err, "audit: record summary")
			}
		}

		return nil
	},
}

func init() {
	auditCmd.Flags().StringVar(&auditLeftPath, "left", "", "left record set CSV (required)")
	auditCmd.Flags().StringVar(&auditLeftSource, "left-source", "stats", "left set source name")
	auditCmd.Flags().StringVar(&auditRightPath, "right", "", "right record set CSV (required)")
	auditCmd.Flags().StringVar(&auditRightSource, "right-source", "primary", "right set source name")
	auditCmd.Flags().StringVar(&auditKey, "key", "primary_id", "shared identifier field to join on")
	auditCmd.Flags().StringVar(&auditSuspiciousPath, "suspicious", "", "suspicious subset CSV output path")
	auditCmd.Flags().StringVar(&auditDBPath, "db", "", "optional SQLite path for the audit trail")
	_ = auditCmd.MarkFlagRequired("left")
	_ = auditCmd.MarkFlagRequired("right")

	rootCmd.AddCommand(auditCmd)
}
