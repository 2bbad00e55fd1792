package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/draftline/rosterlink/internal/model"
	"github.com/draftline/rosterlink/internal/resolve"
	"github.com/draftline/rosterlink/internal/tabio"
)

var (
	reviewRecordsPath   string
	reviewRecordsSource string
	reviewRegistryPath  string
	reviewOutPath       string
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Generate a review workbook for ambiguous records",
	Long: `Scores each record against the full registry pool — gated by birth-date
key when available, by position otherwise, unfiltered as a last resort — and
writes the ranked candidates with empty decision columns for line-by-line
human annotation. Performs no registry writes.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		source, err := model.ParseSource(reviewRecordsSource)
		if err != nil {
			return eris.Wrap(err, "review")
		}
		records, err := tabio.ReadRecords(reviewRecordsPath, source)
		if err != nil {
			return eris.Wrap(err, "review: read records")
		}
		_, pool, err := loadRegistryPool(reviewRegistryPath)
		if err != nil {
			return eris.Wrap(err, "review: read registry")
		}

		policy := matchPolicy()
		rows := resolve.BuildWorkbook(records, pool, policy)
		if err := tabio.WriteWorkbook(reviewOutPath, rows, policy.TopN); err != nil {
			return eris.Wrap(err, "review: write workbook")
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().StringVar(&reviewRecordsPath, "records", "", "ambiguous records CSV (required)")
	reviewCmd.Flags().StringVar(&reviewRecordsSource, "records-source", "stats", "records source name")
	reviewCmd.Flags().StringVar(&reviewRegistryPath, "registry", "registry.json", "registry document path")
	reviewCmd.Flags().StringVar(&reviewOutPath, "out", "review.xlsx", "review workbook output path")
	_ = reviewCmd.MarkFlagRequired("records")

	rootCmd.AddCommand(reviewCmd)
}
