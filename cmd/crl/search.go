package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/retrieval"
)

var (
	searchLimit  int
	searchOffset int
)

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	searchCmd.Flags().IntVar(&searchOffset, "offset", 0, "Results to skip (pagination)")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Keyword search across letter fields",
	Long: `Search letters by case-insensitive substring match.

The query is matched against company name, product name, therapeutic
category, deficiency reason, summary and full text. Each result lists the
fields that matched and a context snippet around the first match in up to
three of them.

Examples:
  crl search "manufacturing"
  crl search "sterility" --limit 5
  crl search "clinical hold" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	r := retrieval.NewRetriever(db, nil)
	result, err := r.Retrieve(cmd.Context(), retrieval.ModeLexical, args[0], searchLimit, searchOffset)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if result.Total == 0 {
			fmt.Println("No letters found")
			return nil
		}
		fmt.Printf("Found %d letters (showing %d):\n\n", result.Total, len(result.Matches))
		for i, m := range result.Matches {
			printMatchHuman(searchOffset+i+1, m)
		}
		return nil
	}

	return outputJSON(result)
}
