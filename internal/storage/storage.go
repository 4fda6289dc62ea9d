// ABOUTME: Persistence contract for rule store snapshots keyed by a path prefix
// ABOUTME: Implemented by the file backend here and by the sqlite and charm subpackages
package storage

import (
	"errors"

	"github.com/harper/pagesmith/internal/models"
)

// ErrNotFound means nothing has been saved under the prefix yet
var ErrNotFound = errors.New("no saved rule index")

// Snapshot is everything needed to restore a rule store. Chunks alone are
// sufficient; the index artifact is an optional accelerator.
type Snapshot struct {
	Chunks        []models.RuleChunk
	IndexKind     string
	IndexArtifact []byte
}

// Backend saves and loads snapshots under a prefix
type Backend interface {
	Name() string
	Save(prefix string, snap *Snapshot) error
	Load(prefix string) (*Snapshot, error)
	Close() error
}
