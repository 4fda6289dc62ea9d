// ABOUTME: Generation run history stored in SQLite
// ABOUTME: Records prompt diagnostics and model output for operator audits
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harper/pagesmith/internal/models"
)

// RunStore handles generation run persistence
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// Record inserts a generation run
func (s *RunStore) Record(run *models.GenerationRun) error {
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	_, err := s.db.conn.Exec(`
		INSERT INTO generation_runs (id, slug, page_type, query, dynamic_count, diagnostics, output, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Slug, run.PageType, run.Query, run.DynamicCount, run.Diagnostics, run.Output, nullString(run.Error), createdAt)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// List returns the most recent runs, newest first
func (s *RunStore) List(limit int) ([]models.GenerationRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.conn.Query(`
		SELECT id, slug, page_type, query, dynamic_count, diagnostics, output, error, created_at
		FROM generation_runs
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []models.GenerationRun
	for rows.Next() {
		var (
			run    models.GenerationRun
			errMsg sql.NullString
		)
		if err := rows.Scan(&run.ID, &run.Slug, &run.PageType, &run.Query, &run.DynamicCount,
			&run.Diagnostics, &run.Output, &errMsg, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Error = errMsg.String
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
