package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
	"github.com/draftline/rosterlink/internal/tabio"
)

var (
	matchTargetsPath  string
	matchTargetSource string
	matchRegistryPath string
	matchOutPath      string
	matchReviewPath   string
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Fuzzy-match an identifier-less record set against the registry",
	Long: `Blocks the registry pool by exact birth-date key, scores each target's
name against its block, and auto-accepts only when the best score clears the
acceptance threshold AND leads the runner-up by the minimum margin. Everything
else is routed to the review workbook; targets without a birth date are
reported unmatched rather than guessed.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		log := zap.L().With(zap.String("command", "match"))

		source, err := model.ParseSource(matchTargetSource)
		if err != nil {
			return eris.Wrap(err, "match")
		}
		targets, err := tabio.ReadRecords(matchTargetsPath, source)
		if err != nil {
			return eris.Wrap(err, "match: read targets")
		}
		_, pool, err := loadRegistryPool(matchRegistryPath)
		if err != nil {
			return eris.Wrap(err, "match: read registry")
		}

		policy := matchPolicy()
		matcher := resolve.NewMatcher(pool, policy)
		results, stats := matcher.MatchAll(targets)

		if err := tabio.WriteMatches(matchOutPath, tabio.MatchTable(results)); err != nil {
			return eris.Wrap(err, "match: write matches")
		}
		log.Info("match table written",
			zap.String("path", matchOutPath),
			zap.Int("auto_matched", stats.AutoMatched))

		if matchReviewPath != "" {
			rows := resolve.WorkbookFromResults(results, pool, policy)
			if err := tabio.WriteWorkbook(matchReviewPath, rows, policy.TopN); err != nil {
				return eris.Wrap(err, "match: write review workbook")
			}
		}

		return nil
	},
}

func init() {
	matchCmd.Flags().StringVar(&matchTargetsPath, "targets", "", "target records CSV (required)")
	matchCmd.Flags().StringVar(&matchTargetSource, "target-source", "legacy", "target records source name")
	matchCmd.Flags().StringVar(&matchRegistryPath, "registry", "registry.json", "registry document path")
	matchCmd.Flags().StringVar(&matchOutPath, "matches", "matches.csv", "match outcomes CSV output path")
	matchCmd.Flags().StringVar(&matchReviewPath, "review", "", "review workbook XLSX output path")
	_ = matchCmd.MarkFlagRequired("targets")

	rootCmd.AddCommand(matchCmd)
}
