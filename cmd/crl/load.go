package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/storage"
)

var loadVectors bool

func init() {
	loadCmd.Flags().BoolVar(&loadVectors, "vectors", false, "File contains embedding vectors instead of letters")
	rootCmd.AddCommand(loadCmd)
}

var loadCmd = &cobra.Command{
	Use:   "load <file.jsonl>",
	Short: "Import letters or embedding vectors from JSONL",
	Long: `Import records from a JSONL file, one JSON object per line.

Without flags each line is a letter record. With --vectors each line is a
precomputed embedding: {"crl_id": ..., "kind": "summary", "model_name": ...,
"vector": [...]}. Existing records with the same key are replaced.

This is the seam to the upstream ingestion and embedding jobs: their output
is loaded here rather than generated by this tool.

Examples:
  crl load letters.jsonl
  crl load summary_embeddings.jsonl --vectors`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

// vectorRecord is one line of a --vectors JSONL file.
type vectorRecord struct {
	CRLID     string    `json:"crl_id"`
	Kind      string    `json:"kind"`
	ModelName string    `json:"model_name"`
	Vector    []float32 `json:"vector"`
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	db := mustOpenDatabase(cfg)
	defer db.Close()

	f, err := os.Open(args[0])
	if err != nil {
		exitWithError(ExitError, "opening file: %v", err)
	}
	defer f.Close()

	count, err := loadFile(f, db, loadVectors)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	if humanOutput {
		kind := "letters"
		if loadVectors {
			kind = "vectors"
		}
		fmt.Printf("Loaded %d %s\n", count, kind)
		return nil
	}

	return outputJSON(StatusResponse{Status: "loaded", Count: count})
}

// loadFile imports all lines of a JSONL stream. The first malformed line
// aborts the import with its line number.
func loadFile(r io.Reader, db *storage.DB, vectors bool) (int, error) {
	scanner := bufio.NewScanner(r)
	// Letters carry full text; lines can be large.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	count := 0
	line := 0
	for scanner.Scan() {
		line++
		data := scanner.Bytes()
		if len(data) == 0 {
			continue
		}

		if vectors {
			var rec vectorRecord
			if err := json.Unmarshal(data, &rec); err != nil {
				return count, fmt.Errorf("line %d: parsing vector: %w", line, err)
			}
			kind := rec.Kind
			if kind == "" {
				kind = storage.KindSummary
			}
			err := db.PutVector(storage.StoredVector{
				CRLID:     rec.CRLID,
				Kind:      kind,
				ModelName: rec.ModelName,
				Vector:    rec.Vector,
			})
			if err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
		} else {
			var letter crl.Letter
			if err := json.Unmarshal(data, &letter); err != nil {
				return count, fmt.Errorf("line %d: parsing letter: %w", line, err)
			}
			if err := db.PutLetter(letter); err != nil {
				return count, fmt.Errorf("line %d: %w", line, err)
			}
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading file: %w", err)
	}
	return count, nil
}
