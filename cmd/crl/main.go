// Package main provides the crl CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/config"
	"github.com/opencrl/crlsearch/internal/embedding"
	"github.com/opencrl/crlsearch/internal/llm"
	"github.com/opencrl/crlsearch/internal/quota"
	"github.com/opencrl/crlsearch/internal/retrieval"
	"github.com/opencrl/crlsearch/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	// Optional .env for local overrides; absence is fine.
	godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "crl",
	Short: "Search and question-answering over FDA complete response letters",
	Long: `crl explores a corpus of FDA complete response letters (CRLs).

Core features:
  - Keyword search with match snippets across letter fields
  - Semantic search over summary embeddings
  - Grounded question answering with citations and an audit trail
  - Corpus loading, listing and statistics

All commands output JSON by default for scripted use; pass --human for
readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(cfg *config.Config) *storage.DB {
	db, err := storage.OpenDB(cfg.DBPath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// newEmbeddingProvider builds the configured embedding provider wrapped with
// bounded retries.
func newEmbeddingProvider(cfg *config.Config) embedding.Provider {
	inner := embedding.NewOllamaProvider(
		embedding.WithBaseURL(cfg.Ollama.URL),
		embedding.WithModel(cfg.Ollama.EmbedModel),
		embedding.WithDimensions(cfg.Ollama.EmbedDims),
		embedding.WithTimeout(cfg.Ollama.RequestTimeout),
	)
	return embedding.NewRetryProvider(inner)
}

// newRetriever builds a retriever over the store.
func newRetriever(cfg *config.Config, db *storage.DB) *retrieval.Retriever {
	return retrieval.NewRetriever(db, newEmbeddingProvider(cfg))
}

// mustNewGenerator builds the generation backend, exits on error.
func mustNewGenerator(cfg *config.Config) llm.Generator {
	gen, err := llm.NewOllamaGenerator(cfg.Ollama.URL,
		llm.WithChatModel(cfg.Ollama.ChatModel))
	if err != nil {
		exitWithError(ExitError, "initializing generator: %v", err)
	}
	return gen
}

// newGate builds the ask-command usage gate from config.
func newGate(cfg *config.Config) quota.Gate {
	if cfg.Quota.AsksPerMinute <= 0 {
		return quota.Unlimited{}
	}
	return quota.NewRateGate(cfg.Quota.AsksPerMinute, cfg.Quota.Burst)
}
