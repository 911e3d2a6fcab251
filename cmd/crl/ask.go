package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/llm"
	"github.com/opencrl/crlsearch/internal/quota"
	"github.com/opencrl/crlsearch/internal/rag"
	"github.com/opencrl/crlsearch/internal/retrieval"
)

var askTopK int

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top", "k", rag.DefaultAskTopK, "Letters retrieved as context")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the letters, with citations",
	Long: `Answer a natural-language question grounded in the letter corpus.

Relevant letters are retrieved by semantic search and passed to the
generation model as context. The answer cites the letters it drew on; a
confidence score reflects how similar the cited letters are to the
question. Every answered question is recorded in the audit log (see
'crl history').

Requires Ollama running with both the embedding and chat models.

Examples:
  crl ask "What are the most common manufacturing deficiencies?"
  crl ask "Which companies received letters about labeling?" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	s := rag.NewSynthesizer(
		newRetriever(cfg, db),
		mustNewGenerator(cfg),
		rag.WithTopK(askTopK),
		rag.WithGate(newGate(cfg)),
		rag.WithAuditLog(db),
	)

	ans, err := s.Ask(cmd.Context(), args[0])
	if err != nil {
		switch {
		case errors.Is(err, quota.ErrDenied):
			exitWithError(ExitQuota, "%v", err)
		case errors.Is(err, retrieval.ErrUnavailable), errors.Is(err, llm.ErrUnavailable):
			exitWithError(ExitUnavailable, "%v", err)
		}
		exitWithError(ExitError, "answering: %v", err)
	}

	if humanOutput {
		fmt.Println(ans.Answer)
		if len(ans.Citations) > 0 {
			fmt.Println("\nCited letters:")
			for _, c := range ans.Citations {
				fmt.Printf("  [CRL-%d] %s  %s", c.Rank, c.ID, c.CompanyName)
				if c.ProductName != "" {
					fmt.Printf(" / %s", c.ProductName)
				}
				fmt.Println()
			}
		}
		fmt.Printf("\nConfidence: %.2f  Model: %s\n", ans.Confidence, ans.Model)
		return nil
	}

	return outputJSON(ans)
}
