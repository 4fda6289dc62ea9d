// ABOUTME: Tests for the file snapshot backend
// ABOUTME: Verifies round trips, missing prefixes, corrupt files and stale artifacts

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func sampleChunks() []models.RuleChunk {
	return []models.RuleChunk{
		{Text: "Lead with outcomes", Embedding: []float32{0.1, 0.2}, Metadata: models.ChunkMetadata{Tags: []string{"general"}}},
		{Text: "Keep one CTA per section", Embedding: []float32{-0.5, 1.25}, Metadata: models.ChunkMetadata{Tags: []string{"cta", "structure"}}},
	}
}

func TestFileBackend_RoundTrip(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "nested", "rules")
	b := NewFileBackend()

	snap := &Snapshot{Chunks: sampleChunks(), IndexKind: "flat", IndexArtifact: []byte("artifact")}
	if err := b.Save(prefix, snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := b.Load(prefix)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(got.Chunks, snap.Chunks) {
		t.Errorf("chunks = %+v, want %+v", got.Chunks, snap.Chunks)
	}
	if string(got.IndexArtifact) != "artifact" || got.IndexKind != "flat" {
		t.Errorf("artifact = %q kind = %q", got.IndexArtifact, got.IndexKind)
	}
}

func TestFileBackend_MetadataFormat(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	if err := NewFileBackend().Save(prefix, &Snapshot{Chunks: sampleChunks()[:1]}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	data, err := os.ReadFile(MetadataPath(prefix))
	if err != nil {
		t.Fatalf("reading metadata: %v", err)
	}
	want := `[{"text":"Lead with outcomes","embedding":[0.1,0.2],"metadata":{"tags":["general"]}}]`
	if string(data) != want {
		t.Errorf("metadata file = %s, want %s", data, want)
	}
}

func TestFileBackend_MissingPrefix(t *testing.T) {
	_, err := NewFileBackend().Load(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestFileBackend_CorruptMetadata(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	if err := os.WriteFile(MetadataPath(prefix), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewFileBackend().Load(prefix)
	if err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestFileBackend_RemovesStaleArtifact(t *testing.T) {
	prefix := filepath.Join(t.TempDir(), "rules")
	b := NewFileBackend()

	if err := b.Save(prefix, &Snapshot{Chunks: sampleChunks(), IndexArtifact: []byte("old")}); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(prefix, &Snapshot{Chunks: sampleChunks()}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(IndexPath(prefix)); !os.IsNotExist(err) {
		t.Error("stale index artifact was not removed")
	}

	got, err := b.Load(prefix)
	if err != nil {
		t.Fatal(err)
	}
	if got.IndexArtifact != nil {
		t.Errorf("artifact = %q, want none", got.IndexArtifact)
	}
}
