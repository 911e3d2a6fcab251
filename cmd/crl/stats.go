package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/storage"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

// StatsResponse is the JSON response for the stats command.
type StatsResponse struct {
	Letters           int `json:"total_crls"`
	Summaries         int `json:"with_summaries"`
	SummaryEmbeddings int `json:"summary_embeddings"`
	QuestionsAnswered int `json:"questions_answered"`
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	var stats StatsResponse
	var err error

	if stats.Letters, err = db.Count(); err != nil {
		exitWithError(ExitError, "counting letters: %v", err)
	}
	if stats.Summaries, err = db.CountSummaries(); err != nil {
		exitWithError(ExitError, "counting summaries: %v", err)
	}
	if stats.SummaryEmbeddings, err = db.CountVectors(storage.KindSummary); err != nil {
		exitWithError(ExitError, "counting embeddings: %v", err)
	}
	if stats.QuestionsAnswered, err = db.CountQA(); err != nil {
		exitWithError(ExitError, "counting history: %v", err)
	}

	if humanOutput {
		fmt.Printf("Letters:            %d\n", stats.Letters)
		fmt.Printf("With summaries:     %d\n", stats.Summaries)
		fmt.Printf("Summary embeddings: %d\n", stats.SummaryEmbeddings)
		fmt.Printf("Questions answered: %d\n", stats.QuestionsAnswered)
		return nil
	}

	return outputJSON(stats)
}
