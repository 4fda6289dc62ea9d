// ABOUTME: Tests for saving and loading the rule store
// ABOUTME: Covers round trips, first-run loads, and corrupt persisted state
package rulestore

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/harper/pagesmith/internal/index"
	"github.com/harper/pagesmith/internal/models"
	"github.com/harper/pagesmith/internal/storage"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	docs := map[string]string{
		"zero":  "",
		"one":   "alpha beta gamma",
		"three": "seo seo seo tone tone tone cta cta heading",
	}
	for name, doc := range docs {
		t.Run(name, func(t *testing.T) {
			prefix := filepath.Join(t.TempDir(), "index", "golden_rules")
			backend := storage.NewFileBackend()
			store := newTestStore(&fakeEmbedder{})
			if _, err := store.Build(context.Background(), doc, []string{"house"}); err != nil {
				t.Fatal(err)
			}
			if err := store.Save(backend, prefix); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			loaded := Load(backend, prefix, &fakeEmbedder{}, WithChunking(3, 0))
			if loaded.Len() != store.Len() {
				t.Fatalf("loaded %d chunks, want %d", loaded.Len(), store.Len())
			}
			if store.Len() > 0 && !reflect.DeepEqual(loaded.Chunks(), store.Chunks()) {
				t.Errorf("loaded chunks = %+v, want %+v", loaded.Chunks(), store.Chunks())
			}
		})
	}
}

func TestSave_NotReadyWritesNothing(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	store := newTestStore(&fakeEmbedder{})
	if err := store.Save(storage.NewFileBackend(), prefix); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(storage.MetadataPath(prefix)); !os.IsNotExist(err) {
		t.Error("Save on a not-ready store should not write metadata")
	}
}

func TestLoad_MissingIsEmpty(t *testing.T) {
	store := Load(storage.NewFileBackend(), filepath.Join(t.TempDir(), "absent"), &fakeEmbedder{})
	if store.Ready() {
		t.Error("store loaded from nothing should not be ready")
	}
	if got := store.Query(context.Background(), "alpha", 5, nil); len(got) != 0 {
		t.Errorf("Query() = %v", got)
	}
}

func TestLoad_CorruptMetadataIsEmpty(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	if err := os.WriteFile(storage.MetadataPath(prefix), []byte("{truncated"), 0644); err != nil {
		t.Fatal(err)
	}
	if store := Load(storage.NewFileBackend(), prefix, &fakeEmbedder{}); store.Ready() {
		t.Error("corrupt metadata should load as not ready")
	}
}

func TestLoad_RaggedEmbeddingsIsEmpty(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	backend := storage.NewFileBackend()
	snap := &storage.Snapshot{Chunks: []models.RuleChunk{
		{Text: "a", Embedding: []float32{1, 0}},
		{Text: "b", Embedding: []float32{1}},
	}}
	if err := backend.Save(prefix, snap); err != nil {
		t.Fatal(err)
	}
	if store := Load(backend, prefix, &fakeEmbedder{}); store.Ready() {
		t.Error("ragged embeddings should load as not ready")
	}
}

func TestLoad_MetadataAloneRebuildsIndex(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	backend := storage.NewFileBackend()
	store := newTestStore(&fakeEmbedder{})
	if _, err := store.Build(context.Background(), "alpha alpha alpha beta beta beta", nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(backend, prefix); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		artifact []byte
	}{
		{"missing artifact", nil},
		{"corrupt artifact", []byte("garbage")},
		{"mismatched artifact", mustFlatArtifact(t, [][]float32{{1, 0}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_ = os.Remove(storage.IndexPath(prefix))
			if tt.artifact != nil {
				if err := os.WriteFile(storage.IndexPath(prefix), tt.artifact, 0644); err != nil {
					t.Fatal(err)
				}
			}

			brute, _ := index.BuilderFor(index.KindBruteForce)
			loaded := Load(backend, prefix, &fakeEmbedder{}, WithIndexBuilder(brute))
			if !loaded.Ready() {
				t.Fatal("metadata alone should produce a ready store")
			}
			if kind := loaded.Stats().IndexKind; kind != string(index.KindBruteForce) {
				t.Errorf("IndexKind = %q, want rebuilt bruteforce", kind)
			}
			got := loaded.Query(context.Background(), "beta", 1, nil)
			if len(got) != 1 || !strings.HasPrefix(got[0].Text, "beta") {
				t.Errorf("Query() = %v", got)
			}
		})
	}
}

func TestLoad_UsesMatchingArtifact(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	backend := storage.NewFileBackend()
	store := newTestStore(&fakeEmbedder{})
	if _, err := store.Build(context.Background(), "alpha alpha alpha beta beta beta", nil); err != nil {
		t.Fatal(err)
	}
	if err := store.Save(backend, prefix); err != nil {
		t.Fatal(err)
	}

	brute, _ := index.BuilderFor(index.KindBruteForce)
	loaded := Load(backend, prefix, &fakeEmbedder{}, WithIndexBuilder(brute))
	if kind := loaded.Stats().IndexKind; kind != string(index.KindFlat) {
		t.Errorf("IndexKind = %q, want flat from artifact", kind)
	}
}

func TestLoad_ArtifactFromOtherCorpusIsIgnored(t *testing.T) {
	dir := t.TempDir()
	backend := storage.NewFileBackend()
	current := filepath.Join(dir, "current")
	other := filepath.Join(dir, "other")

	for prefix, doc := range map[string]string{
		current: "alpha alpha alpha beta beta beta",
		other:   "beta beta beta alpha alpha alpha",
	} {
		store := newTestStore(&fakeEmbedder{})
		if _, err := store.Build(context.Background(), doc, nil); err != nil {
			t.Fatal(err)
		}
		if err := store.Save(backend, prefix); err != nil {
			t.Fatal(err)
		}
	}

	// Same row count and dimension, rows in the other order.
	artifact, err := os.ReadFile(storage.IndexPath(other))
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(storage.IndexPath(current), artifact, 0644); err != nil {
		t.Fatal(err)
	}

	brute, _ := index.BuilderFor(index.KindBruteForce)
	loaded := Load(backend, current, &fakeEmbedder{}, WithIndexBuilder(brute))
	if kind := loaded.Stats().IndexKind; kind != string(index.KindBruteForce) {
		t.Errorf("IndexKind = %q, want rebuilt bruteforce", kind)
	}
	got := loaded.Query(context.Background(), "alpha", 1, nil)
	if len(got) != 1 || got[0].Text != "alpha alpha alpha" {
		t.Fatalf("Query() = %v, want the alpha chunk", got)
	}
	if score := *got[0].Metadata.Score; math.Abs(score-1) > 1e-9 {
		t.Errorf("score = %v, want 1", score)
	}
}

func mustFlatArtifact(t *testing.T, vectors [][]float32) []byte {
	t.Helper()
	idx, err := index.NewFlat(vectors)
	if err != nil {
		t.Fatal(err)
	}
	data, err := idx.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return data
}
