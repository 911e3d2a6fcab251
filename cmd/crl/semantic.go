package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/quota"
	"github.com/opencrl/crlsearch/internal/retrieval"
)

var semanticTopK int

func init() {
	semanticCmd.Flags().IntVarP(&semanticTopK, "top", "k", retrieval.DefaultTopK, "Number of results")
	rootCmd.AddCommand(semanticCmd)
}

var semanticCmd = &cobra.Command{
	Use:   "semantic <query>",
	Short: "Semantic search over letter summaries",
	Long: `Rank letters by meaning rather than exact words.

The query is embedded and compared against stored summary embeddings by
cosine similarity. Requires Ollama running with the embedding model and a
populated embedding store (see 'crl load'); the command fails rather than
falling back to keyword search. Subject to the same usage budget as 'ask'.

Examples:
  crl semantic "problems with sterile manufacturing"
  crl semantic "missing efficacy endpoints" -k 10`,
	Args: cobra.ExactArgs(1),
	RunE: runSemantic,
}

func runSemantic(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	result, err := gatedSemanticSearch(cmd.Context(), newGate(cfg), newRetriever(cfg, db), args[0], semanticTopK)
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrDenied):
			exitWithError(ExitQuota, "%v", err)
		case errors.Is(err, retrieval.ErrUnavailable):
			exitWithError(ExitUnavailable, "%v", err)
		}
		exitWithError(ExitError, "searching: %v", err)
	}

	if humanOutput {
		if len(result.Matches) == 0 {
			fmt.Println("No letters found")
			return nil
		}
		for i, m := range result.Matches {
			printSemanticHuman(i+1, m)
		}
		return nil
	}

	return outputJSON(result)
}

// gatedSemanticSearch consults the usage gate before the costed embedding
// call. A denied request never reaches the provider.
func gatedSemanticSearch(ctx context.Context, gate quota.Gate, r *retrieval.Retriever, query string, k int) (retrieval.Result, error) {
	if err := gate.Allow(ctx); err != nil {
		return retrieval.Result{}, err
	}
	return r.Retrieve(ctx, retrieval.ModeSemantic, query, k, 0)
}
