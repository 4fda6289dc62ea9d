// ABOUTME: Brute-force cosine similarity index
// ABOUTME: Always available fallback; scores every stored vector per query
package index

import "fmt"

// BruteForce keeps raw vectors and their norms and scans them per query
type BruteForce struct {
	dim     int
	vectors [][]float32
	norms   []float64
}

// NewBruteForce copies vectors and precomputes their norms
func NewBruteForce(vectors [][]float32) (*BruteForce, error) {
	dim, err := commonDim(vectors)
	if err != nil {
		return nil, err
	}
	b := &BruteForce{
		dim:     dim,
		vectors: make([][]float32, len(vectors)),
		norms:   make([]float64, len(vectors)),
	}
	for i, v := range vectors {
		b.vectors[i] = append([]float32(nil), v...)
		b.norms[i] = norm(v)
	}
	return b, nil
}

// Kind implements Index
func (b *BruteForce) Kind() Kind { return KindBruteForce }

// Len implements Index
func (b *BruteForce) Len() int { return len(b.vectors) }

// Dim implements Index
func (b *BruteForce) Dim() int { return b.dim }

// TopK ranks every stored vector by cosine similarity to query
func (b *BruteForce) TopK(query []float32, k int) ([]Hit, error) {
	if len(b.vectors) == 0 {
		return nil, nil
	}
	if len(query) != b.dim {
		return nil, fmt.Errorf("query has %d dims, index has %d: %w", len(query), b.dim, ErrDimensionMismatch)
	}
	qn := norm(query)
	scores := make([]float64, len(b.vectors))
	for i, v := range b.vectors {
		if qn == 0 || b.norms[i] == 0 {
			continue
		}
		var dot float64
		for j, x := range v {
			dot += float64(x) * float64(query[j])
		}
		scores[i] = dot / (b.norms[i] * qn)
	}
	return rank(scores, k), nil
}
