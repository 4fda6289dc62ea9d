// ABOUTME: Flat inner-product index over L2-normalized vectors
// ABOUTME: Stores rows in one contiguous matrix and persists as a binary artifact
package index

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// flatMagic prefixes every serialized flat index
var flatMagic = [4]byte{'P', 'S', 'F', 'I'}

const flatVersion uint32 = 1

// Flat is an exact inner-product index; rows are normalized once at build time
type Flat struct {
	dim  int
	n    int
	data []float64 // row-major n*dim
}

// NewFlat normalizes vectors and packs them into a flat matrix
func NewFlat(vectors [][]float32) (*Flat, error) {
	dim, err := commonDim(vectors)
	if err != nil {
		return nil, err
	}
	f := &Flat{dim: dim, n: len(vectors), data: make([]float64, 0, len(vectors)*dim)}
	for _, v := range vectors {
		f.data = append(f.data, normalized(v)...)
	}
	return f, nil
}

// Kind implements Index
func (f *Flat) Kind() Kind { return KindFlat }

// Len implements Index
func (f *Flat) Len() int { return f.n }

// Dim implements Index
func (f *Flat) Dim() int { return f.dim }

// TopK normalizes the query and ranks rows by inner product
func (f *Flat) TopK(query []float32, k int) ([]Hit, error) {
	if f.n == 0 {
		return nil, nil
	}
	if len(query) != f.dim {
		return nil, fmt.Errorf("query has %d dims, index has %d: %w", len(query), f.dim, ErrDimensionMismatch)
	}
	q := normalized(query)
	scores := make([]float64, f.n)
	for i := 0; i < f.n; i++ {
		row := f.data[i*f.dim : (i+1)*f.dim]
		var dot float64
		for j, x := range row {
			dot += x * q[j]
		}
		scores[i] = dot
	}
	return rank(scores, k), nil
}

// Matches reports whether every row equals the normalized form of the
// corresponding vector within tol
func (f *Flat) Matches(vectors [][]float32, tol float64) bool {
	if len(vectors) != f.n {
		return false
	}
	for i, v := range vectors {
		if len(v) != f.dim {
			return false
		}
		row := f.data[i*f.dim : (i+1)*f.dim]
		for j, x := range normalized(v) {
			if math.Abs(row[j]-x) > tol {
				return false
			}
		}
	}
	return true
}

// MarshalBinary encodes the index as magic, version, n, dim, then rows
func (f *Flat) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(16 + len(f.data)*8)
	buf.Write(flatMagic[:])
	header := []uint32{flatVersion, uint32(f.n), uint32(f.dim)}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return nil, err
	}
	row := make([]byte, 8)
	for _, x := range f.data {
		binary.LittleEndian.PutUint64(row, math.Float64bits(x))
		buf.Write(row)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes a serialized flat index
func Unmarshal(data []byte) (Index, error) {
	r := bytes.NewReader(data)
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if magic != flatMagic {
		return nil, errors.New("not a flat index artifact")
	}
	var header [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("reading index header: %w", err)
	}
	if header[0] != flatVersion {
		return nil, fmt.Errorf("unsupported flat index version %d", header[0])
	}
	n, dim := int(header[1]), int(header[2])
	if want := n * dim * 8; r.Len() != want {
		return nil, fmt.Errorf("flat index body is %d bytes, want %d", r.Len(), want)
	}
	f := &Flat{dim: dim, n: n, data: make([]float64, n*dim)}
	row := make([]byte, 8)
	for i := range f.data {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, fmt.Errorf("reading index body: %w", err)
		}
		f.data[i] = math.Float64frombits(binary.LittleEndian.Uint64(row))
	}
	return f, nil
}

// Marshal returns the persisted artifact for idx, or nil when the strategy has none
func Marshal(idx Index) ([]byte, error) {
	if m, ok := idx.(interface{ MarshalBinary() ([]byte, error) }); ok {
		return m.MarshalBinary()
	}
	return nil, nil
}
