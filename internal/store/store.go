// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists batch run history in a SQLite database so past
// acquisition runs can be inspected from the CLI.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/DBDXSS/ScholarDock/internal/download"
)

// Store manages the download history SQLite database.
type Store struct {
	db *sql.DB
}

// Run is one recorded batch run.
type Run struct {
	ID          int64
	StartedAt   time.Time
	DownloadDir string
	Total       int
	Succeeded   int
	Failed      int
}

// Download is one article outcome within a run.
type Download struct {
	ID      int64
	RunID   int64
	Title   string
	URL     string
	PDFPath string
	Success bool
	Reason  string
}

// New opens or creates the history database at dbPath, creating parent
// directories and the schema as needed.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			download_dir TEXT,
			total INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			title TEXT NOT NULL,
			url TEXT,
			pdf_path TEXT,
			success INTEGER NOT NULL,
			reason TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_downloads_run_id ON downloads(run_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordBatch writes one batch result and its per-article outcomes in a
// single transaction, returning the new run's ID.
func (s *Store) RecordBatch(result download.BatchResult, downloadDir string, startedAt time.Time) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (started_at, download_dir, total, succeeded, failed) VALUES (?, ?, ?, ?, ?)`,
		startedAt.UTC().Format(time.RFC3339), downloadDir,
		result.Total, len(result.Successful), len(result.Failed),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO downloads (run_id, title, url, pdf_path, success, reason) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing download insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range result.Successful {
		if _, err := stmt.Exec(runID, o.Article.Title, o.Article.URL, o.PDFPath, 1, ""); err != nil {
			return 0, fmt.Errorf("inserting download: %w", err)
		}
	}
	for _, o := range result.Failed {
		if _, err := stmt.Exec(runID, o.Article.Title, o.Article.URL, "", 0, string(o.Reason)); err != nil {
			return 0, fmt.Errorf("inserting download: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive
// limit returns all runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	query := `SELECT id, started_at, download_dir, total, succeeded, failed FROM runs ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		if err := rows.Scan(&r.ID, &startedAt, &r.DownloadDir, &r.Total, &r.Succeeded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, startedAt); err == nil {
			r.StartedAt = t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Downloads returns the per-article outcomes for one run.
func (s *Store) Downloads(runID int64) ([]Download, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, title, url, pdf_path, success, reason FROM downloads WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	defer rows.Close()

	var downloads []Download
	for rows.Next() {
		var d Download
		var success int
		if err := rows.Scan(&d.ID, &d.RunID, &d.Title, &d.URL, &d.PDFPath, &success, &d.Reason); err != nil {
			return nil, fmt.Errorf("scanning download: %w", err)
		}
		d.Success = success != 0
		downloads = append(downloads, d)
	}
	return downloads, rows.Err()
}
