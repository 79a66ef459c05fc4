// Package history persists review runs to a local SQLite database so past
// reports can be listed and re-rendered without repeating LLM calls.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/empath-review/empath/internal/config"
	"github.com/empath-review/empath/internal/review"
)

// Store wraps a SQLite database of past review runs. Pure Go driver, no
// CGO.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location.
func DefaultPath() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// Open opens (or creates) the history database at the given path and
// ensures the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	// SQLite supports one writer; a single connection serializes access.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure history database: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS runs (
		run_id       TEXT PRIMARY KEY,
		created_at   DATETIME NOT NULL DEFAULT (datetime('now')),
		language     TEXT NOT NULL,
		persona      TEXT NOT NULL,
		comments     INTEGER NOT NULL,
		mild         INTEGER NOT NULL,
		moderate     INTEGER NOT NULL,
		harsh        INTEGER NOT NULL,
		overall      REAL NOT NULL,
		improvement  REAL NOT NULL,
		report_json  TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create runs table: %w", err)
	}
	return nil
}

// Save records a completed report.
func (s *Store) Save(ctx context.Context, report *review.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs
		(run_id, language, persona, comments, mild, moderate, harsh, overall, improvement, report_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		string(report.Language),
		report.Persona,
		report.Inputs.Comments,
		report.Breakdown.Mild,
		report.Breakdown.Moderate,
		report.Breakdown.Harsh,
		report.Score.Overall,
		report.Score.ImprovementPotential,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RunSummary is one row of `empath history list`.
type RunSummary struct {
	RunID     string
	CreatedAt time.Time
	Language  string
	Persona   string
	Comments  int
	Harsh     int
	Overall   float64
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `SELECT run_id, created_at, language, persona, comments, harsh, overall
		FROM runs ORDER BY created_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.CreatedAt, &r.Language, &r.Persona, &r.Comments, &r.Harsh, &r.Overall); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get loads a full report by run ID.
func (s *Store) Get(ctx context.Context, runID string) (*review.Report, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE run_id = ?`, runID).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	var report review.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		return nil, fmt.Errorf("unmarshal stored report: %w", err)
	}
	return &report, nil
}

// Clear deletes all stored runs.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("clear runs: %w", err)
	}
	return nil
}
