// ABOUTME: Tests for the flat and brute-force similarity indexes
// ABOUTME: Verifies ranking, tie-breaking, empty corpus, k bounds and persistence

package index

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func builders() map[Kind]Builder {
	out := map[Kind]Builder{}
	for _, kind := range []Kind{KindFlat, KindBruteForce} {
		b, err := BuilderFor(kind)
		if err != nil {
			panic(err)
		}
		out[kind] = b
	}
	return out
}

func TestBuilderFor_Unknown(t *testing.T) {
	if _, err := BuilderFor("hnsw"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestTopK_KnownCorpus(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.8, 0.6, 0},
		{0, 0, 1},
	}
	query := []float32{1, 0.1, 0}

	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, err := build(vectors)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			hits, err := idx.TopK(query, 2)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			if len(hits) != 2 {
				t.Fatalf("got %d hits, want 2", len(hits))
			}
			if hits[0].Index != 0 || hits[1].Index != 1 {
				t.Errorf("order = [%d %d], want [0 1]", hits[0].Index, hits[1].Index)
			}

			qn := math.Sqrt(1 + 0.01)
			want0 := 1 / qn
			want1 := (0.8 + 0.06) / qn
			if math.Abs(hits[0].Score-want0) > 1e-6 {
				t.Errorf("score[0] = %f, want %f", hits[0].Score, want0)
			}
			if math.Abs(hits[1].Score-want1) > 1e-6 {
				t.Errorf("score[1] = %f, want %f", hits[1].Score, want1)
			}
		})
	}
}

func TestTopK_TiesKeepInsertionOrder(t *testing.T) {
	vectors := [][]float32{
		{0, 1},
		{2, 0},
		{1, 0},
		{3, 0},
	}
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, _ := build(vectors)
			hits, err := idx.TopK([]float32{1, 0}, 4)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			want := []int{1, 2, 3, 0}
			for i, h := range hits {
				if h.Index != want[i] {
					t.Fatalf("hit order = %v, want %v", hits, want)
				}
			}
		})
	}
}

func TestTopK_KLargerThanCorpus(t *testing.T) {
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, _ := build([][]float32{{1, 0}, {0, 1}})
			hits, err := idx.TopK([]float32{1, 1}, 10)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			if len(hits) != 2 {
				t.Errorf("got %d hits, want 2", len(hits))
			}
		})
	}
}

func TestTopK_EmptyCorpus(t *testing.T) {
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, err := build(nil)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			hits, err := idx.TopK([]float32{1, 2, 3}, 5)
			if err != nil {
				t.Errorf("TopK on empty index returned error: %v", err)
			}
			if len(hits) != 0 {
				t.Errorf("got %d hits, want 0", len(hits))
			}
		})
	}
}

func TestTopK_DimensionMismatch(t *testing.T) {
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, _ := build([][]float32{{1, 0, 0}})
			_, err := idx.TopK([]float32{1, 0}, 1)
			if !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("err = %v, want ErrDimensionMismatch", err)
			}
		})
	}
}

func TestBuild_RaggedVectors(t *testing.T) {
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			_, err := build([][]float32{{1, 0}, {1, 0, 0}})
			if !errors.Is(err, ErrDimensionMismatch) {
				t.Errorf("err = %v, want ErrDimensionMismatch", err)
			}
		})
	}
}

func TestTopK_ZeroVectorsScoreZero(t *testing.T) {
	for kind, build := range builders() {
		t.Run(string(kind), func(t *testing.T) {
			idx, _ := build([][]float32{{0, 0}, {1, 0}})
			hits, err := idx.TopK([]float32{1, 0}, 2)
			if err != nil {
				t.Fatalf("TopK: %v", err)
			}
			if hits[0].Index != 1 || hits[1].Score != 0 {
				t.Errorf("hits = %+v", hits)
			}
			for _, h := range hits {
				if math.IsNaN(h.Score) {
					t.Error("zero vector produced NaN score")
				}
			}
		})
	}
}

func TestFlatAndBruteForceAgree(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	vectors := make([][]float32, 200)
	for i := range vectors {
		v := make([]float32, 32)
		for j := range v {
			v[j] = float32(rng.NormFloat64())
		}
		vectors[i] = v
	}

	flat, _ := NewFlat(vectors)
	brute, _ := NewBruteForce(vectors)

	for q := 0; q < 20; q++ {
		query := make([]float32, 32)
		for j := range query {
			query[j] = float32(rng.NormFloat64())
		}
		a, _ := flat.TopK(query, 10)
		b, _ := brute.TopK(query, 10)
		for i := range a {
			if a[i].Index != b[i].Index {
				t.Fatalf("query %d rank %d: flat=%d brute=%d", q, i, a[i].Index, b[i].Index)
			}
			if math.Abs(a[i].Score-b[i].Score) > 1e-9 {
				t.Errorf("query %d rank %d: score drift %g", q, i, a[i].Score-b[i].Score)
			}
		}
	}
}

func TestFlat_MarshalRoundTrip(t *testing.T) {
	vectors := [][]float32{{3, 4}, {1, 0}, {0, 2}}
	flat, _ := NewFlat(vectors)

	data, err := Marshal(flat)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	restored, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if restored.Len() != 3 || restored.Dim() != 2 || restored.Kind() != KindFlat {
		t.Fatalf("restored index = %d x %d (%s)", restored.Len(), restored.Dim(), restored.Kind())
	}

	want, _ := flat.TopK([]float32{1, 1}, 3)
	got, _ := restored.TopK([]float32{1, 1}, 3)
	for i := range want {
		if want[i] != got[i] {
			t.Errorf("hit %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestUnmarshal_Corrupt(t *testing.T) {
	flat, _ := NewFlat([][]float32{{1, 2}})
	good, _ := flat.MarshalBinary()

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", []byte("NOPE0000000000000000")},
		{"truncated", good[:len(good)-3]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Unmarshal(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMarshal_BruteForceHasNoArtifact(t *testing.T) {
	brute, _ := NewBruteForce([][]float32{{1}})
	data, err := Marshal(brute)
	if err != nil || data != nil {
		t.Errorf("Marshal(bruteforce) = %v, %v; want nil, nil", data, err)
	}
}

func TestFlat_Matches(t *testing.T) {
	vectors := [][]float32{{1, 0, 0}, {0, 2, 2}}
	f, err := NewFlat(vectors)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		vectors [][]float32
		want    bool
	}{
		{"same vectors", vectors, true},
		{"scaled vectors", [][]float32{{3, 0, 0}, {0, 1, 1}}, true},
		{"reordered rows", [][]float32{{0, 2, 2}, {1, 0, 0}}, false},
		{"different row", [][]float32{{1, 0, 0}, {0, 2, 0}}, false},
		{"fewer rows", vectors[:1], false},
		{"wrong dimension", [][]float32{{1, 0}, {0, 2}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Matches(tt.vectors, 1e-9); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
