// ABOUTME: Similarity index contract shared by the flat and brute-force strategies
// ABOUTME: TopK returns hits by descending score with first-inserted-wins tie-breaking
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Kind identifies an index strategy
type Kind string

const (
	// KindFlat is an inner-product index over L2-normalized rows
	KindFlat Kind = "flat"
	// KindBruteForce computes cosine similarity against raw vectors per query
	KindBruteForce Kind = "bruteforce"
)

// ErrDimensionMismatch is returned when vectors disagree on dimensionality
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Hit is one ranked result: the insertion position and its similarity
type Hit struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// Index answers top-k nearest-neighbour queries over a fixed set of vectors
type Index interface {
	Kind() Kind
	Len() int
	Dim() int
	TopK(query []float32, k int) ([]Hit, error)
}

// Builder constructs an index over vectors; the Rule Store is injected with one
type Builder func(vectors [][]float32) (Index, error)

// BuilderFor returns the builder for a configured kind
func BuilderFor(kind Kind) (Builder, error) {
	switch kind {
	case KindFlat, "":
		return func(v [][]float32) (Index, error) { return NewFlat(v) }, nil
	case KindBruteForce:
		return func(v [][]float32) (Index, error) { return NewBruteForce(v) }, nil
	default:
		return nil, fmt.Errorf("unknown index kind %q", kind)
	}
}

// commonDim validates that every vector has the same length and returns it
func commonDim(vectors [][]float32) (int, error) {
	if len(vectors) == 0 {
		return 0, nil
	}
	dim := len(vectors[0])
	for i, v := range vectors {
		if len(v) != dim {
			return 0, fmt.Errorf("vector %d has %d dims, want %d: %w", i, len(v), dim, ErrDimensionMismatch)
		}
	}
	return dim, nil
}

// norm returns the L2 norm of v
func norm(v []float32) float64 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// normalized returns v scaled to unit length in float64; zero vectors stay zero
func normalized(v []float32) []float64 {
	out := make([]float64, len(v))
	n := norm(v)
	if n == 0 {
		return out
	}
	for i, x := range v {
		out[i] = float64(x) / n
	}
	return out
}

// rank orders scores descending, ties by ascending index, and keeps k
func rank(scores []float64, k int) []Hit {
	if len(scores) == 0 || k <= 0 {
		return nil
	}
	hits := make([]Hit, len(scores))
	for i, s := range scores {
		hits[i] = Hit{Index: i, Score: s}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits
}
