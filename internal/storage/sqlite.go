// Package storage provides the SQLite-backed document store, embedding
// store, and append-only Q&A audit log.
//
// This subsystem only reads the crls and embeddings tables; writes to them
// belong to the upstream ingestion and embedding jobs (surfaced here through
// the load command). Reads take no exclusive locks, so a scan overlapping an
// ingestion run may observe a partial snapshot; results are eventually
// consistent with the last completed run.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/search"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	db *sql.DB
}

// selectLetterFields is the standard field list for SELECT queries.
const selectLetterFields = `id, application_number_json, letter_date, letter_year,
	approval_status, company_name, product_name, therapeutic_category,
	deficiency_reason, text, summary, summary_model`

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS crls (
			id TEXT PRIMARY KEY,
			application_number_json TEXT NOT NULL,
			letter_date TEXT NOT NULL,
			letter_year TEXT NOT NULL,
			approval_status TEXT NOT NULL,
			company_name TEXT NOT NULL,
			product_name TEXT,
			therapeutic_category TEXT,
			deficiency_reason TEXT,
			text TEXT,
			summary TEXT,
			summary_model TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_crls_company ON crls(company_name);
		CREATE INDEX IF NOT EXISTS idx_crls_year ON crls(letter_year);

		-- One vector per (letter, kind); replaced wholesale on regeneration
		CREATE TABLE IF NOT EXISTS embeddings (
			crl_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			model_name TEXT NOT NULL,
			vector_json TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			PRIMARY KEY (crl_id, kind)
		);

		-- Append-only; this subsystem never updates or deletes rows
		CREATE TABLE IF NOT EXISTS qa_history (
			id TEXT PRIMARY KEY,
			question TEXT NOT NULL,
			answer TEXT NOT NULL,
			cited_ids_json TEXT NOT NULL,
			model TEXT NOT NULL,
			confidence REAL NOT NULL,
			created_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// appTypePattern extracts the leading letters of an application number,
// e.g. "BLA" from "BLA 125576".
var appTypePattern = regexp.MustCompile(`^[A-Z]+`)

func applicationType(numbers []string) string {
	if len(numbers) == 0 {
		return ""
	}
	return appTypePattern.FindString(numbers[0])
}

// PutLetter inserts or replaces a letter.
func (d *DB) PutLetter(l crl.Letter) error {
	if l.ID == "" {
		return fmt.Errorf("letter has no id")
	}

	appJSON, err := json.Marshal(l.ApplicationNumber)
	if err != nil {
		return fmt.Errorf("marshaling application numbers for %s: %w", l.ID, err)
	}

	_, err = d.db.Exec(`
		INSERT OR REPLACE INTO crls (
			id, application_number_json, letter_date, letter_year,
			approval_status, company_name, product_name, therapeutic_category,
			deficiency_reason, text, summary, summary_model
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, string(appJSON), l.LetterDate, l.LetterYear,
		l.ApprovalStatus, l.CompanyName,
		nullableStringValue(l.ProductName), nullableStringValue(l.TherapeuticCategory),
		nullableStringValue(l.DeficiencyReason), nullableStringValue(l.Text),
		nullableStringValue(l.Summary), nullableStringValue(l.SummaryModel),
	)
	if err != nil {
		return fmt.Errorf("inserting letter %s: %w", l.ID, err)
	}
	return nil
}

// GetByID retrieves a letter by id. A miss returns (nil, nil).
func (d *DB) GetByID(id string) (*crl.Letter, error) {
	row := d.db.QueryRow(`SELECT `+selectLetterFields+` FROM crls WHERE id = ?`, id)
	return scanLetter(row)
}

// ListFilters contains optional filters for List. All specified filters are
// combined with AND.
type ListFilters struct {
	ApprovalStatus string // exact match
	LetterYear     string // exact match
	CompanyName    string // case-insensitive partial match
}

// List returns a page of letters matching the filters, newest letter first,
// along with the total match count independent of the page window.
func (d *DB) List(filters ListFilters, limit, offset int) ([]crl.Letter, int, error) {
	where := "1=1"
	var args []interface{}

	if filters.ApprovalStatus != "" {
		where += " AND approval_status = ?"
		args = append(args, filters.ApprovalStatus)
	}
	if filters.LetterYear != "" {
		where += " AND letter_year = ?"
		args = append(args, filters.LetterYear)
	}
	if filters.CompanyName != "" {
		where += ` AND company_name LIKE ? ESCAPE '\'`
		args = append(args, "%"+search.EscapeLike(filters.CompanyName)+"%")
	}

	var total int
	if err := d.db.QueryRow(`SELECT COUNT(*) FROM crls WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting letters: %w", err)
	}

	query := `SELECT ` + selectLetterFields + ` FROM crls WHERE ` + where +
		` ORDER BY letter_date DESC, id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing letters: %w", err)
	}
	defer rows.Close()

	letters, err := scanLetters(rows)
	if err != nil {
		return nil, 0, err
	}
	return letters, total, nil
}

// KeywordCandidates returns letters with a case-insensitive substring match
// of query in any searchable field, newest letter first. The query is
// LIKE-escaped before it reaches SQL; the matcher re-verifies matches and
// extracts snippets in memory.
func (d *DB) KeywordCandidates(query string) ([]crl.Letter, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []crl.Letter{}, nil
	}

	pattern := "%" + search.EscapeLike(strings.ToLower(query)) + "%"

	conditions := make([]string, 0, len(crl.SearchFields))
	args := make([]interface{}, 0, len(crl.SearchFields))
	for _, field := range crl.SearchFields {
		conditions = append(conditions, `LOWER(`+field+`) LIKE ? ESCAPE '\'`)
		args = append(args, pattern)
	}

	rows, err := d.db.Query(`
		SELECT `+selectLetterFields+`
		FROM crls
		WHERE `+strings.Join(conditions, " OR ")+`
		ORDER BY letter_date DESC, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("searching letters: %w", err)
	}
	defer rows.Close()

	return scanLetters(rows)
}

// Count returns the total number of letters.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM crls").Scan(&count)
	return count, err
}

// CountSummaries returns the number of letters with a non-empty summary.
func (d *DB) CountSummaries() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM crls WHERE summary IS NOT NULL AND summary != ''").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLetter(s scanner) (*crl.Letter, error) {
	var l crl.Letter
	var appJSON string
	var productName, therapeuticCategory, deficiencyReason sql.NullString
	var text, summary, summaryModel sql.NullString

	err := s.Scan(
		&l.ID, &appJSON, &l.LetterDate, &l.LetterYear,
		&l.ApprovalStatus, &l.CompanyName, &productName, &therapeuticCategory,
		&deficiencyReason, &text, &summary, &summaryModel,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	l.ProductName = productName.String
	l.TherapeuticCategory = therapeuticCategory.String
	l.DeficiencyReason = deficiencyReason.String
	l.Text = text.String
	l.Summary = summary.String
	l.SummaryModel = summaryModel.String

	if err := json.Unmarshal([]byte(appJSON), &l.ApplicationNumber); err != nil {
		return nil, fmt.Errorf("parsing application numbers for %s: %w", l.ID, err)
	}
	l.ApplicationType = applicationType(l.ApplicationNumber)

	return &l, nil
}

func scanLetters(rows *sql.Rows) ([]crl.Letter, error) {
	var letters []crl.Letter
	for rows.Next() {
		l, err := scanLetter(rows)
		if err != nil {
			return nil, err
		}
		if l != nil {
			letters = append(letters, *l)
		}
	}
	return letters, rows.Err()
}

// nullableStringValue converts a string to sql.NullString, treating empty as NULL.
func nullableStringValue(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
