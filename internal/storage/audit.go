package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QARecord is one audit entry for an answered question.
type QARecord struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CitedIDs   []string  `json:"cited_ids"`
	Model      string    `json:"model"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// AppendQA appends a Q&A audit record. Records are never updated or deleted
// by this subsystem. A missing id or timestamp is filled in.
func (d *DB) AppendQA(rec QARecord) (QARecord, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if rec.CitedIDs == nil {
		rec.CitedIDs = []string{}
	}

	citedJSON, err := json.Marshal(rec.CitedIDs)
	if err != nil {
		return rec, fmt.Errorf("marshaling cited ids: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO qa_history (id, question, answer, cited_ids_json, model, confidence, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Question, rec.Answer, string(citedJSON),
		rec.Model, rec.Confidence, rec.CreatedAt.Unix())
	if err != nil {
		return rec, fmt.Errorf("appending qa record: %w", err)
	}
	return rec, nil
}

// RecentQA returns the most recent audit records, newest first.
func (d *DB) RecentQA(limit int) ([]QARecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := d.db.Query(`
		SELECT id, question, answer, cited_ids_json, model, confidence, created_at
		FROM qa_history
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing qa history: %w", err)
	}
	defer rows.Close()

	var records []QARecord
	for rows.Next() {
		var rec QARecord
		var citedJSON string
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.Question, &rec.Answer, &citedJSON,
			&rec.Model, &rec.Confidence, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(citedJSON), &rec.CitedIDs); err != nil {
			return nil, fmt.Errorf("parsing cited ids for %s: %w", rec.ID, err)
		}
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountQA returns the number of audit records.
func (d *DB) CountQA() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM qa_history").Scan(&count)
	return count, err
}
