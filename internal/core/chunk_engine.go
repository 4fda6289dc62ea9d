// ABOUTME: ChunkEngine splits golden-rule documents into overlapping word windows
// ABOUTME: Windows are bounded in words, overlap by a fixed count, and are de-duplicated
package core

import "strings"

const (
	// DefaultChunkSize is the default window length in words
	DefaultChunkSize = 260
	// DefaultChunkOverlap is the default number of words shared by consecutive windows
	DefaultChunkOverlap = 40
)

// ChunkEngine handles word-window chunking with fixed size and overlap
type ChunkEngine struct {
	size    int
	overlap int
}

// NewChunkEngine creates a ChunkEngine. Non-positive size falls back to
// DefaultChunkSize and negative overlap is treated as zero.
func NewChunkEngine(size, overlap int) *ChunkEngine {
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	return &ChunkEngine{size: size, overlap: overlap}
}

// Size returns the window length in words
func (ce *ChunkEngine) Size() int { return ce.size }

// Overlap returns the configured overlap in words
func (ce *ChunkEngine) Overlap() int { return ce.overlap }

// Chunk splits text into overlapping word windows
func (ce *ChunkEngine) Chunk(text string) []string {
	return ChunkWords(text, ce.size, ce.overlap)
}

// ChunkWords normalizes whitespace and splits text into windows of size words,
// advancing size-overlap words per step. When overlap >= size the windows do
// not overlap. Exact duplicate windows are dropped, keeping the first.
func ChunkWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if size <= 0 {
		size = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}

	step := size - overlap
	if overlap >= size {
		step = size
	}

	var chunks []string
	seen := make(map[string]struct{})
	for start := 0; start < len(words); start += step {
		end := min(start+size, len(words))
		chunk := strings.Join(words[start:end], " ")
		if _, dup := seen[chunk]; !dup {
			seen[chunk] = struct{}{}
			chunks = append(chunks, chunk)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}
