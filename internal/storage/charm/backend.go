// ABOUTME: Charm KV implementation of the rule snapshot backend
// ABOUTME: Stores chunk metadata and the index artifact under two keys per prefix
package charm

import (
	"encoding/json"
	"fmt"

	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/storage"
)

// RulesPrefix namespaces every key this backend writes
const RulesPrefix = "rules:"

type metadataRecord struct {
	IndexKind string             `json:"index_kind,omitempty"`
	Chunks    []models.RuleChunk `json:"chunks"`
}

// Backend persists snapshots in charm KV
type Backend struct {
	client *Client
}

// NewBackend creates a Backend over an open client
func NewBackend(client *Client) *Backend {
	return &Backend{client: client}
}

// MetadataKey is the key holding a prefix's chunk list
func MetadataKey(prefix string) string { return RulesPrefix + prefix + ":meta" }

// IndexKey is the key holding a prefix's index artifact
func IndexKey(prefix string) string { return RulesPrefix + prefix + ":index" }

// Name implements storage.Backend
func (b *Backend) Name() string { return "charm" }

// Save writes the artifact first so a reader that sees new metadata never
// pairs it with an older artifact of a different size.
func (b *Backend) Save(prefix string, snap *storage.Snapshot) error {
	chunks := snap.Chunks
	if chunks == nil {
		chunks = []models.RuleChunk{}
	}
	data, err := json.Marshal(metadataRecord{IndexKind: snap.IndexKind, Chunks: chunks})
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if len(snap.IndexArtifact) > 0 {
		if err := b.client.Set(IndexKey(prefix), snap.IndexArtifact); err != nil {
			return err
		}
	} else if err := b.client.Delete(IndexKey(prefix)); err != nil {
		return err
	}
	return b.client.Set(MetadataKey(prefix), data)
}

// Load returns the snapshot for prefix or storage.ErrNotFound
func (b *Backend) Load(prefix string) (*storage.Snapshot, error) {
	data, err := b.client.Get(MetadataKey(prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	if data == nil {
		return nil, storage.ErrNotFound
	}

	var record metadataRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	snap := &storage.Snapshot{Chunks: record.Chunks}
	if artifact, err := b.client.Get(IndexKey(prefix)); err == nil && len(artifact) > 0 {
		snap.IndexKind = record.IndexKind
		snap.IndexArtifact = artifact
	}
	return snap, nil
}

// Close closes the client
func (b *Backend) Close() error {
	return b.client.Close()
}
