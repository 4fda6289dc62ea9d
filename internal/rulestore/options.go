// ABOUTME: Functional options for the rule store
// ABOUTME: Index strategy, chunk window, embedding timeout and logger
package rulestore

import (
	"time"

	"github.com/harper/pagesmith/internal/core"
	"github.com/harper/pagesmith/internal/index"
	"go.uber.org/zap"
)

// Option configures a Store
type Option func(*Store)

// WithIndexBuilder selects the similarity index strategy
func WithIndexBuilder(builder index.Builder) Option {
	return func(s *Store) {
		if builder != nil {
			s.builder = builder
		}
	}
}

// WithChunking sets the chunk window in words
func WithChunking(size, overlap int) Option {
	return func(s *Store) {
		s.chunker = core.NewChunkEngine(size, overlap)
	}
}

// WithEmbedTimeout bounds every embedding call; zero leaves the caller's context alone
func WithEmbedTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.embedTimeout = timeout
	}
}

// WithLogger sets the logger used for degraded queries and loads
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}
