package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum records to return")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent question-answer audit records",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	records, err := db.RecentQA(historyLimit)
	if err != nil {
		exitWithError(ExitError, "loading history: %v", err)
	}

	if humanOutput {
		if len(records) == 0 {
			fmt.Println("No questions answered yet")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %s\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.ID)
			fmt.Printf("  Q: %s\n", rec.Question)
			fmt.Printf("  A: %s\n", truncateString(rec.Answer, SummaryMaxLen))
			if len(rec.CitedIDs) > 0 {
				fmt.Printf("  Cited: %s\n", strings.Join(rec.CitedIDs, ", "))
			}
			fmt.Printf("  Confidence: %.2f\n\n", rec.Confidence)
		}
		return nil
	}

	return outputJSON(records)
}
