// ABOUTME: Tests for the retrieval benchmark metrics
// ABOUTME: Covers recall, tag precision and rank-wise index agreement

package retrieval

import (
	"testing"

	"github.com/harper/pagesmith/internal/models"
)

func chunk(text string, score float64, tags ...string) models.RuleChunk {
	return models.RuleChunk{Text: text, Metadata: models.ChunkMetadata{Tags: tags}}.WithScore(score)
}

func TestCalculateContextRecall(t *testing.T) {
	m := NewMetricsCalculator()

	tests := []struct {
		name      string
		retrieved []string
		expected  []string
		want      float64
	}{
		{"no expectations", nil, nil, 1.0},
		{"all found", []string{"Use a Call To Action"}, []string{"call to action"}, 1.0},
		{"half found", []string{"parking details"}, []string{"parking details", "opening hours"}, 0.5},
		{"none found", []string{"unrelated"}, []string{"founders"}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, detail := m.CalculateContextRecall(tt.retrieved, tt.expected)
			if got != tt.want {
				t.Errorf("recall = %.2f, want %.2f (%s)", got, tt.want, detail)
			}
		})
	}
}

func TestCalculateTagPrecision(t *testing.T) {
	m := NewMetricsCalculator()

	results := []models.RuleChunk{
		chunk("a", 0.9, "cta"),
		chunk("b", 0.8, "seo"),
		chunk("c", 0.7, "general"),
		chunk("d", 0.6, "cta", "tone"),
	}

	tests := []struct {
		name     string
		results  []models.RuleChunk
		required []string
		want     float64
	}{
		{"no results", nil, []string{"cta"}, 1.0},
		{"no filter", results, nil, 1.0},
		{"any tag counts", results, []string{"cta", "seo"}, 0.75},
		{"single tag", results, []string{"tone"}, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := m.CalculateTagPrecision(tt.results, tt.required); got != tt.want {
				t.Errorf("precision = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestCalculateAgreement(t *testing.T) {
	m := NewMetricsCalculator()

	a := []models.RuleChunk{chunk("x", 0.9), chunk("y", 0.5), chunk("z", 0.5)}
	swappedTie := []models.RuleChunk{chunk("x", 0.9), chunk("z", 0.5), chunk("y", 0.5)}
	drifted := []models.RuleChunk{chunk("x", 0.9), chunk("y", 0.4), chunk("z", 0.5)}

	if got, _ := m.CalculateAgreement(a, swappedTie); got != 1.0 {
		t.Errorf("swapped ties agreement = %.2f, want 1.0", got)
	}
	if got, _ := m.CalculateAgreement(a, drifted); got < 0.66 || got > 0.67 {
		t.Errorf("drifted agreement = %.4f, want 2/3", got)
	}
	if got, _ := m.CalculateAgreement(a, a[:2]); got != 0.0 {
		t.Errorf("length mismatch agreement = %.2f, want 0", got)
	}
	if got, _ := m.CalculateAgreement(nil, nil); got != 1.0 {
		t.Errorf("empty agreement = %.2f, want 1.0", got)
	}
}

func TestEvaluateScenario(t *testing.T) {
	m := NewMetricsCalculator()
	scenario := Scenario{ID: "s", Name: "S", RequiredTags: []string{"cta"}, ExpectedContext: []string{"button"}}
	results := []models.RuleChunk{chunk("one primary button", 0.8, "cta")}

	got := m.EvaluateScenario(scenario, results, results)
	if got.Status != "PASS" {
		t.Errorf("Status = %s, details %v", got.Status, got.Details)
	}
	if got.OverallScore != 1.0 {
		t.Errorf("OverallScore = %.2f, want 1.0", got.OverallScore)
	}

	got = m.EvaluateScenario(scenario, nil, nil)
	if got.Status != "FAIL" || got.ContextRecallScore != 0 {
		t.Errorf("empty results: status %s recall %.2f", got.Status, got.ContextRecallScore)
	}
}
