package storage

import (
	"encoding/json"
	"fmt"
	"time"
)

// Embedding kinds stored per letter. Dimensionality is constant within a
// kind; mixing models within a kind is a data error caught at search time.
const (
	KindSummary  = "summary"
	KindFullText = "fulltext"
)

// StoredVector is one embedding row from the embeddings table.
type StoredVector struct {
	CRLID     string
	Kind      string
	ModelName string
	Vector    []float32
}

// PutVector inserts or wholesale-replaces the embedding for (crlID, kind).
func (d *DB) PutVector(v StoredVector) error {
	if v.CRLID == "" || v.Kind == "" {
		return fmt.Errorf("embedding needs crl_id and kind")
	}
	if len(v.Vector) == 0 {
		return fmt.Errorf("empty embedding vector for %s", v.CRLID)
	}

	vecJSON, err := json.Marshal(v.Vector)
	if err != nil {
		return fmt.Errorf("marshaling vector for %s: %w", v.CRLID, err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO embeddings (crl_id, kind, model_name, vector_json, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		v.CRLID, v.Kind, v.ModelName, string(vecJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("inserting embedding for %s: %w", v.CRLID, err)
	}
	return nil
}

// ListVectors returns all stored embeddings of the given kind, ordered by
// crl_id so repeated calls rank candidates identically.
func (d *DB) ListVectors(kind string) ([]StoredVector, error) {
	rows, err := d.db.Query(`
		SELECT crl_id, kind, model_name, vector_json
		FROM embeddings
		WHERE kind = ?
		ORDER BY crl_id`, kind)
	if err != nil {
		return nil, fmt.Errorf("listing embeddings: %w", err)
	}
	defer rows.Close()

	var vectors []StoredVector
	for rows.Next() {
		var v StoredVector
		var vecJSON string
		if err := rows.Scan(&v.CRLID, &v.Kind, &v.ModelName, &vecJSON); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(vecJSON), &v.Vector); err != nil {
			return nil, fmt.Errorf("parsing vector for %s: %w", v.CRLID, err)
		}
		vectors = append(vectors, v)
	}
	return vectors, rows.Err()
}

// CountVectors returns the number of stored embeddings of the given kind.
func (d *DB) CountVectors(kind string) (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM embeddings WHERE kind = ?", kind).Scan(&count)
	return count, err
}
