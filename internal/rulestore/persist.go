// ABOUTME: Saving and restoring the rule store through a storage backend
// ABOUTME: Chunk metadata alone can rebuild the index; the artifact only speeds loading
package rulestore

import (
	"errors"
	"fmt"
	"time"

	"github.com/harper/pagesmith/internal/index"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/storage"
	"go.uber.org/zap"
)

// artifactTolerance bounds drift between saved rows and re-normalized embeddings
const artifactTolerance = 1e-9

// Save persists the corpus under prefix. A store that is not ready writes nothing.
func (s *Store) Save(backend storage.Backend, prefix string) error {
	c := s.current()
	if c == nil {
		return nil
	}

	artifact, err := index.Marshal(c.index)
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}
	snap := &storage.Snapshot{Chunks: cloneChunks(c.chunks)}
	for i := range snap.Chunks {
		snap.Chunks[i].Metadata.Score = nil
	}
	if len(artifact) > 0 {
		snap.IndexKind = string(c.index.Kind())
		snap.IndexArtifact = artifact
	}

	if err := backend.Save(prefix, snap); err != nil {
		return fmt.Errorf("failed to save rule store: %w", err)
	}
	s.logger.Info("rule store saved",
		zap.String("backend", backend.Name()),
		zap.String("prefix", prefix),
		zap.Int("chunks", len(snap.Chunks)))
	return nil
}

// Load restores a store saved under prefix. Missing or unreadable state yields
// an empty, not-ready store so a first run needs no special casing.
func Load(backend storage.Backend, prefix string, embedder Embedder, opts ...Option) *Store {
	s := New(embedder, opts...)
	log := s.logger.With(zap.String("backend", backend.Name()), zap.String("prefix", prefix))

	snap, err := backend.Load(prefix)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("no saved rule store; starting empty")
		return s
	}
	if err != nil {
		log.Warn("saved rule store unreadable; starting empty", zap.Error(err))
		return s
	}
	if len(snap.Chunks) == 0 {
		return s
	}

	if err := s.restore(snap); err != nil {
		log.Warn("saved rule store invalid; starting empty", zap.Error(err))
		return New(embedder, opts...)
	}
	c := s.current()
	log.Info("rule store loaded",
		zap.Int("chunks", len(c.chunks)),
		zap.String("index", string(c.index.Kind())))
	return s
}

func (s *Store) restore(snap *storage.Snapshot) error {
	chunks := make([]models.RuleChunk, len(snap.Chunks))
	vectors := make([][]float32, len(snap.Chunks))
	for i, chunk := range snap.Chunks {
		chunks[i] = chunk.Clone()
		chunks[i].Metadata.Score = nil
		vectors[i] = chunks[i].Embedding
	}

	idx := s.restoreArtifact(snap, vectors)
	if idx == nil {
		var err error
		if idx, err = s.builder(vectors); err != nil {
			return fmt.Errorf("failed to rebuild index: %w", err)
		}
	}

	s.swap(&corpus{chunks: chunks, index: idx, builtAt: time.Now().UTC()})
	return nil
}

// restoreArtifact returns the saved index when it decodes and its rows are the
// chunk embeddings, otherwise nil. A save interrupted between the artifact and
// the metadata can leave an artifact of the right shape for other chunks.
func (s *Store) restoreArtifact(snap *storage.Snapshot, vectors [][]float32) index.Index {
	if len(snap.IndexArtifact) == 0 || (snap.IndexKind != "" && snap.IndexKind != string(index.KindFlat)) {
		return nil
	}
	idx, err := index.Unmarshal(snap.IndexArtifact)
	if err != nil {
		s.logger.Warn("index artifact unreadable; rebuilding from metadata", zap.Error(err))
		return nil
	}
	flat, ok := idx.(*index.Flat)
	if !ok || !flat.Matches(vectors, artifactTolerance) {
		s.logger.Warn("index artifact does not match metadata; rebuilding",
			zap.Int("artifact_rows", idx.Len()),
			zap.Int("chunks", len(vectors)))
		return nil
	}
	return flat
}
