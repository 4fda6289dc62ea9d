// ABOUTME: RuleChunk is the retrievable unit of golden-rule guidance
// ABOUTME: Carries chunk text, its embedding vector, and tag/score metadata
package models

import "sort"

// Topical tags attached to rule chunks
const (
	TagSEO       = "seo"
	TagStructure = "structure"
	TagCTA       = "cta"
	TagTone      = "tone"
	TagGeneral   = "general"
)

// ChunkMetadata holds the tag set and, on query results only, the similarity score
type ChunkMetadata struct {
	Tags  []string `json:"tags"`
	Score *float64 `json:"score,omitempty"`
}

// RuleChunk represents a rule snippet with metadata for retrieval
type RuleChunk struct {
	Text      string        `json:"text"`
	Embedding []float32     `json:"embedding"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// HasTag reports whether the chunk carries the given tag
func (c RuleChunk) HasTag(tag string) bool {
	for _, t := range c.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the chunk's tag set intersects tags
func (c RuleChunk) HasAnyTag(tags []string) bool {
	for _, tag := range tags {
		if c.HasTag(tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy that shares no slices with c
func (c RuleChunk) Clone() RuleChunk {
	out := RuleChunk{Text: c.Text}
	if c.Embedding != nil {
		out.Embedding = append([]float32(nil), c.Embedding...)
	}
	if c.Metadata.Tags != nil {
		out.Metadata.Tags = append([]string(nil), c.Metadata.Tags...)
	}
	if c.Metadata.Score != nil {
		score := *c.Metadata.Score
		out.Metadata.Score = &score
	}
	return out
}

// WithScore returns a deep copy annotated with a query score
func (c RuleChunk) WithScore(score float64) RuleChunk {
	out := c.Clone()
	out.Metadata.Score = &score
	return out
}

// NormalizeTags sorts and de-duplicates a tag list, dropping blanks
func NormalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
