// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps an opt-in, append-only history of extraction runs in
// SQLite. Extraction never reads it back, so every run stays independent of
// earlier ones.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/abstract-extractor/pkg/types"
)

const (
	dbFile       = "catalog.db"
	defaultLimit = 20
)

// Store manages the catalog database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded run.
type Entry struct {
	RunID       string `json:"run_id" yaml:"run_id"`
	types.Paper `yaml:",inline"`
}

// QueryOptions filters List.
type QueryOptions struct {
	// Status keeps only runs with this outcome.
	Status types.ExtractionStatus

	// PaperID keeps only runs for this input stem.
	PaperID string

	// Contains keeps runs whose abstract contains this text, case-insensitively.
	Contains string

	// Limit caps the number of entries, newest first. Zero uses the default.
	Limit int
}

// Open opens or creates dir/catalog.db and its schema.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultCatalogDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			paper_id TEXT NOT NULL,
			pdf_path TEXT NOT NULL,
			output_path TEXT,
			title TEXT,
			pages_scanned INTEGER,
			abstract TEXT,
			method TEXT,
			label TEXT,
			status TEXT NOT NULL,
			extracted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_paper_id ON runs(paper_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_extracted_at ON runs(extracted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends paper as a new run.
func (s *Store) Record(ctx context.Context, paper types.Paper) error {
	at := paper.ExtractedAt
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, paper_id, pdf_path, output_path, title, pages_scanned,
			abstract, method, label, status, extracted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), paper.ID, paper.PDFPath, paper.OutputPath, paper.Title, paper.PagesScanned,
		paper.Abstract.Text, string(paper.Abstract.Method), paper.Abstract.Label,
		string(paper.Status), at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting run for %s: %w", paper.ID, err)
	}
	return nil
}

// List returns runs matching opts, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT run_id, paper_id, pdf_path, output_path, title, pages_scanned,
			abstract, method, label, status, extracted_at
		FROM runs WHERE 1=1`)

	if opts.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	if opts.PaperID != "" {
		qb.WriteString(` AND paper_id = ?`)
		args = append(args, opts.PaperID)
	}
	if opts.Contains != "" {
		qb.WriteString(` AND instr(lower(abstract), lower(?)) > 0`)
		args = append(args, opts.Contains)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	qb.WriteString(` ORDER BY extracted_at DESC, rowid DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                          Entry
			output, title, text, label sql.NullString
			method, at, status         string
			pages                      sql.NullInt64
		)
		if err := rows.Scan(&e.RunID, &e.ID, &e.PDFPath, &output, &title, &pages,
			&text, &method, &label, &status, &at); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		e.OutputPath = output.String
		e.Title = title.String
		e.PagesScanned = int(pages.Int64)
		e.Abstract = types.Abstract{Text: text.String, Method: types.DetectionMethod(method), Label: label.String}
		e.Status = types.ExtractionStatus(status)
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.ExtractedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
