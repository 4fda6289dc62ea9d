// ABOUTME: Rule store owning the chunked, tagged and embedded golden-rule corpus
// ABOUTME: Builds swap in a new immutable corpus so queries never observe partial state
package rulestore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harper/pagesmith/internal/core"
	"github.com/harper/pagesmith/internal/index"
	"github.com/harper/pagesmith/internal/models"
	"go.uber.org/zap"
)

// DefaultTopK is used when a query asks for zero or fewer results
const DefaultTopK = 5

// DefaultEmbedTimeout bounds embedding calls unless overridden
const DefaultEmbedTimeout = 60 * time.Second

// ErrEmbedding wraps embedding gateway failures during a build
var ErrEmbedding = errors.New("embedding failed")

// Embedder turns texts into vectors, one per text in the same order
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// corpus is never mutated after construction
type corpus struct {
	chunks  []models.RuleChunk
	index   index.Index
	builtAt time.Time
}

// Store serves similarity queries over the current corpus
type Store struct {
	embedder     Embedder
	builder      index.Builder
	chunker      *core.ChunkEngine
	embedTimeout time.Duration
	logger       *zap.Logger

	mu     sync.RWMutex
	corpus *corpus

	buildMu sync.Mutex
}

// Stats summarizes the current corpus
type Stats struct {
	Ready     bool           `json:"ready"`
	Chunks    int            `json:"chunks"`
	Dimension int            `json:"dimension"`
	IndexKind string         `json:"index_kind,omitempty"`
	Tags      map[string]int `json:"tags"`
	BuiltAt   *time.Time     `json:"built_at,omitempty"`
}

// New creates an empty, not-ready store
func New(embedder Embedder, opts ...Option) *Store {
	flat, _ := index.BuilderFor(index.KindFlat)
	s := &Store{
		embedder:     embedder,
		builder:      flat,
		chunker:      core.NewChunkEngine(core.DefaultChunkSize, core.DefaultChunkOverlap),
		embedTimeout: DefaultEmbedTimeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) current() *corpus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.corpus
}

func (s *Store) swap(c *corpus) {
	s.mu.Lock()
	s.corpus = c
	s.mu.Unlock()
}

// Ready reports whether the store holds any chunks
func (s *Store) Ready() bool {
	return s.current() != nil
}

// Len returns the number of chunks
func (s *Store) Len() int {
	if c := s.current(); c != nil {
		return len(c.chunks)
	}
	return 0
}

// Chunks returns a deep copy of the corpus in insertion order
func (s *Store) Chunks() []models.RuleChunk {
	c := s.current()
	if c == nil {
		return []models.RuleChunk{}
	}
	return cloneChunks(c.chunks)
}

// Stats describes the current corpus
func (s *Store) Stats() Stats {
	stats := Stats{Tags: map[string]int{}}
	c := s.current()
	if c == nil {
		return stats
	}
	stats.Ready = true
	stats.Chunks = len(c.chunks)
	stats.Dimension = c.index.Dim()
	stats.IndexKind = string(c.index.Kind())
	builtAt := c.builtAt
	stats.BuiltAt = &builtAt
	for _, chunk := range c.chunks {
		for _, tag := range chunk.Metadata.Tags {
			stats.Tags[tag]++
		}
	}
	return stats
}

// Build replaces the corpus with chunks of raw. Each chunk is tagged, unioned
// with baseTags, and embedded in a single batch call. On any failure the
// previous corpus stays in place. Text with no words empties the store.
func (s *Store) Build(ctx context.Context, raw string, baseTags []string) ([]models.RuleChunk, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	texts := s.chunker.Chunk(raw)
	if len(texts) == 0 {
		s.swap(nil)
		s.logger.Info("rule document has no words; store cleared")
		return []models.RuleChunk{}, nil
	}

	vectors, err := s.embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("%w: got %d vectors for %d chunks", ErrEmbedding, len(vectors), len(texts))
	}

	idx, err := s.builder(vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to build index: %w", err)
	}

	chunks := make([]models.RuleChunk, len(texts))
	for i, text := range texts {
		chunks[i] = models.RuleChunk{
			Text:      text,
			Embedding: append([]float32(nil), vectors[i]...),
			Metadata:  models.ChunkMetadata{Tags: core.MergeTags(baseTags, core.Tag(text))},
		}
	}

	s.swap(&corpus{chunks: chunks, index: idx, builtAt: time.Now().UTC()})
	s.logger.Info("rule store built",
		zap.Int("chunks", len(chunks)),
		zap.Int("dimension", idx.Dim()),
		zap.String("index", string(idx.Kind())))

	return cloneChunks(chunks), nil
}

// Query returns up to topK chunks most similar to text, keeping only those
// sharing a tag with requiredTags when it is non-empty. Filtering happens after
// ranking so fewer than topK results is normal. Embedding failures degrade to
// an empty result.
func (s *Store) Query(ctx context.Context, text string, topK int, requiredTags []string) []models.RuleChunk {
	results := []models.RuleChunk{}
	c := s.current()
	if c == nil {
		return results
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	vectors, err := s.embed(ctx, []string{text})
	if err != nil || len(vectors) != 1 {
		s.logger.Warn("query embedding failed; returning no dynamic rules", zap.Error(err))
		return results
	}

	hits, err := c.index.TopK(vectors[0], topK)
	if err != nil {
		s.logger.Warn("similarity search failed; returning no dynamic rules", zap.Error(err))
		return results
	}

	for _, hit := range hits {
		chunk := c.chunks[hit.Index]
		if len(requiredTags) > 0 && !chunk.HasAnyTag(requiredTags) {
			continue
		}
		results = append(results, chunk.WithScore(hit.Score))
	}
	return results
}

func (s *Store) embed(ctx context.Context, texts []string) ([][]float32, error) {
	if s.embedder == nil {
		return nil, errors.New("no embedder configured")
	}
	if s.embedTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.embedTimeout)
		defer cancel()
	}
	return s.embedder.Embed(ctx, texts)
}

func cloneChunks(chunks []models.RuleChunk) []models.RuleChunk {
	out := make([]models.RuleChunk, len(chunks))
	for i, chunk := range chunks {
		out[i] = chunk.Clone()
	}
	return out
}
