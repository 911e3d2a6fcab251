package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/retrieval"
	"github.com/opencrl/crlsearch/internal/search"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 20 // Default limit for search/list commands

	SummaryMaxLen = 160 // Summary truncation in list views
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Count  int    `json:"count,omitempty"`
}

// matchHighlight colors the matched span in human-mode snippets.
var matchHighlight = color.New(color.FgYellow, color.Bold)

// formatSnippet renders a snippet with the match highlighted.
func formatSnippet(s search.Snippet) string {
	return s.Before + matchHighlight.Sprint(s.Match) + s.After
}

// printLetterSummary prints a one-result summary block.
func printLetterSummary(num int, l crl.Letter) {
	fmt.Printf("[%d] %s\n", num, l.ID)
	fmt.Printf("    %s", l.CompanyName)
	if l.ProductName != "" {
		fmt.Printf(" / %s", l.ProductName)
	}
	fmt.Println()
	if l.LetterDate != "" || l.ApprovalStatus != "" {
		fmt.Printf("    %s  %s\n", l.LetterDate, l.ApprovalStatus)
	}
	if l.Summary != "" {
		fmt.Printf("    %s\n", truncateString(l.Summary, SummaryMaxLen))
	}
}

// printMatchHuman prints a lexical search match with its snippets.
func printMatchHuman(num int, m retrieval.Match) {
	printLetterSummary(num, m.Letter)
	fmt.Printf("    fields: %s\n", strings.Join(m.MatchedFields, ", "))
	for _, field := range m.MatchedFields {
		if snip, ok := m.Snippets[field]; ok {
			fmt.Printf("    %s: %s\n", field, formatSnippet(snip))
		}
	}
	fmt.Println()
}

// printSemanticHuman prints a semantic search match with its score.
func printSemanticHuman(num int, m retrieval.Match) {
	fmt.Printf("[%d] [%.3f] %s\n", num, m.Score, m.Letter.ID)
	fmt.Printf("    %s", m.Letter.CompanyName)
	if m.Letter.ProductName != "" {
		fmt.Printf(" / %s", m.Letter.ProductName)
	}
	fmt.Println()
	if m.Letter.Summary != "" {
		fmt.Printf("    %s\n", truncateString(m.Letter.Summary, SummaryMaxLen))
	}
	fmt.Println()
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
