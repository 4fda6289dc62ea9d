// ABOUTME: File backend writing <prefix>.json chunk metadata and <prefix>.idx index artifacts
// ABOUTME: Writes are atomic via temp file and rename so readers never see partial files
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/pagesmith/internal/models"
)

const (
	metadataExt = ".json"
	indexExt    = ".idx"
	flatKind    = "flat"
)

// FileBackend stores snapshots as files next to the prefix path
type FileBackend struct{}

// NewFileBackend creates a FileBackend
func NewFileBackend() *FileBackend {
	return &FileBackend{}
}

// Name implements Backend
func (b *FileBackend) Name() string { return "file" }

// MetadataPath returns the chunk metadata file for a prefix
func MetadataPath(prefix string) string { return prefix + metadataExt }

// IndexPath returns the index artifact file for a prefix
func IndexPath(prefix string) string { return prefix + indexExt }

// Save writes the chunk list and, when present, the index artifact. A stale
// artifact from an earlier save is removed when the new snapshot has none.
func (b *FileBackend) Save(prefix string, snap *Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(prefix), 0755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	chunks := snap.Chunks
	if chunks == nil {
		chunks = []models.RuleChunk{}
	}
	data, err := json.Marshal(chunks)
	if err != nil {
		return fmt.Errorf("failed to marshal chunks: %w", err)
	}

	if len(snap.IndexArtifact) > 0 {
		if err := writeAtomic(IndexPath(prefix), snap.IndexArtifact); err != nil {
			return err
		}
	} else if err := os.Remove(IndexPath(prefix)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove stale index artifact: %w", err)
	}

	return writeAtomic(MetadataPath(prefix), data)
}

// Load reads a snapshot. A missing metadata file yields ErrNotFound; an
// unreadable index artifact is skipped since metadata alone is sufficient.
func (b *FileBackend) Load(prefix string) (*Snapshot, error) {
	data, err := os.ReadFile(MetadataPath(prefix))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read chunk metadata: %w", err)
	}

	var chunks []models.RuleChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		return nil, fmt.Errorf("failed to parse chunk metadata: %w", err)
	}

	snap := &Snapshot{Chunks: chunks}
	if artifact, err := os.ReadFile(IndexPath(prefix)); err == nil && len(artifact) > 0 {
		snap.IndexKind = flatKind
		snap.IndexArtifact = artifact
	}
	return snap, nil
}

// Close implements Backend
func (b *FileBackend) Close() error { return nil }

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
