// ABOUTME: SQLite implementation of the rule snapshot backend
// ABOUTME: Replaces a prefix's snapshot and chunks inside one transaction
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/storage"
)

// SnapshotStore persists rule store snapshots in SQLite
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a SnapshotStore
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Name implements storage.Backend
func (s *SnapshotStore) Name() string { return "sqlite" }

// Save replaces any snapshot stored under prefix
func (s *SnapshotStore) Save(prefix string, snap *storage.Snapshot) error {
	tx, err := s.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM rule_chunks WHERE prefix = ?`, prefix); err != nil {
		return fmt.Errorf("failed to clear chunks: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM rule_snapshots WHERE prefix = ?`, prefix); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO rule_snapshots (prefix, index_kind, index_artifact, chunk_count, saved_at)
		VALUES (?, ?, ?, ?, ?)
	`, prefix, nullString(snap.IndexKind), snap.IndexArtifact, len(snap.Chunks), time.Now())
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO rule_chunks (prefix, position, text, embedding, tags)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer stmt.Close()

	for i, chunk := range snap.Chunks {
		tags, err := json.Marshal(chunk.Metadata.Tags)
		if err != nil {
			return fmt.Errorf("failed to marshal tags: %w", err)
		}
		if _, err := stmt.Exec(prefix, i, chunk.Text, vectorToBlob(chunk.Embedding), string(tags)); err != nil {
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// Load returns the snapshot for prefix or storage.ErrNotFound
func (s *SnapshotStore) Load(prefix string) (*storage.Snapshot, error) {
	var (
		kind     sql.NullString
		artifact []byte
		count    int
	)
	err := s.db.conn.QueryRow(`
		SELECT index_kind, index_artifact, chunk_count
		FROM rule_snapshots
		WHERE prefix = ?
	`, prefix).Scan(&kind, &artifact, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	rows, err := s.db.conn.Query(`
		SELECT text, embedding, tags
		FROM rule_chunks
		WHERE prefix = ?
		ORDER BY position
	`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to read chunks: %w", err)
	}
	defer rows.Close()

	chunks := make([]models.RuleChunk, 0, count)
	for rows.Next() {
		var (
			chunk models.RuleChunk
			blob  []byte
			tags  string
		)
		if err := rows.Scan(&chunk.Text, &blob, &tags); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if len(blob) > 0 {
			if chunk.Embedding, err = blobToVector(blob); err != nil {
				return nil, err
			}
		}
		if err := json.Unmarshal([]byte(tags), &chunk.Metadata.Tags); err != nil {
			return nil, fmt.Errorf("failed to parse tags: %w", err)
		}
		chunks = append(chunks, chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(chunks) != count {
		return nil, fmt.Errorf("snapshot %q lists %d chunks, found %d", prefix, count, len(chunks))
	}

	return &storage.Snapshot{
		Chunks:        chunks,
		IndexKind:     kind.String,
		IndexArtifact: artifact,
	}, nil
}

// Close closes the underlying database
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
