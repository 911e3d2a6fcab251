package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/storage"
)

var (
	listStatus  string
	listYear    string
	listCompany string
	listLimit   int
	listOffset  int
)

func init() {
	listCmd.Flags().StringVar(&listStatus, "status", "", "Filter by approval status (exact)")
	listCmd.Flags().StringVar(&listYear, "year", "", "Filter by letter year (exact)")
	listCmd.Flags().StringVar(&listCompany, "company", "", "Filter by company name (partial match)")
	listCmd.Flags().IntVar(&listLimit, "limit", DefaultSearchLimit, "Maximum results to return")
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "Results to skip (pagination)")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List letters with optional filters",
	Long: `List letters, newest first, with optional filters.

All filters combine with AND.

Examples:
  crl list --year 2023
  crl list --company pfizer --status "Not Approved"
  crl list --limit 50 --offset 50`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// ListResponse is the JSON response for the list command.
type ListResponse struct {
	Letters []crl.Letter `json:"crls"`
	Total   int          `json:"total"`
	Limit   int          `json:"limit"`
	Offset  int          `json:"offset"`
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	filters := storage.ListFilters{
		ApprovalStatus: listStatus,
		LetterYear:     listYear,
		CompanyName:    listCompany,
	}

	letters, total, err := db.List(filters, listLimit, listOffset)
	if err != nil {
		exitWithError(ExitError, "listing letters: %v", err)
	}
	if letters == nil {
		letters = []crl.Letter{}
	}

	if humanOutput {
		if total == 0 {
			fmt.Println("No letters found")
			return nil
		}
		fmt.Printf("Found %d letters (showing %d):\n\n", total, len(letters))
		for i, l := range letters {
			printLetterSummary(listOffset+i+1, l)
			fmt.Println()
		}
		return nil
	}

	return outputJSON(ListResponse{Letters: letters, Total: total, Limit: listLimit, Offset: listOffset})
}
