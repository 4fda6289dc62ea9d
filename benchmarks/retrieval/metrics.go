// ABOUTME: Retrieval metrics for context recall, tag precision and index agreement
// ABOUTME: Deterministic scoring against each scenario's ground truth

package retrieval

import (
	"fmt"
	"math"
	"strings"

	"github.com/harper/pagesmith/internal/models"
)

// scoreTolerance bounds float drift between the two index implementations
const scoreTolerance = 1e-9

// MetricsCalculator computes benchmark scores
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateContextRecall computes the share of expected phrases found in the
// retrieved chunk texts, case-insensitively
func (m *MetricsCalculator) CalculateContextRecall(
	retrieved []string,
	expected []string,
) (float64, string) {
	if len(expected) == 0 {
		return 1.0, "No context retrieval required"
	}

	allContext := strings.ToUpper(strings.Join(retrieved, " "))

	found := 0
	missing := []string{}
	for _, item := range expected {
		if strings.Contains(allContext, strings.ToUpper(item)) {
			found++
		} else {
			missing = append(missing, item)
		}
	}

	recall := float64(found) / float64(len(expected))
	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}
	return recall, fmt.Sprintf("Partial context recall (%.2f) - missing items: %v", recall, missing)
}

// CalculateTagPrecision computes the share of results sharing a required tag.
// With no required tags every result counts.
func (m *MetricsCalculator) CalculateTagPrecision(results []models.RuleChunk, required []string) (float64, string) {
	if len(results) == 0 {
		return 1.0, "No results to check"
	}
	if len(required) == 0 {
		return 1.0, "No tag filter"
	}

	matching := 0
	for _, chunk := range results {
		if chunk.HasAnyTag(required) {
			matching++
		}
	}
	precision := float64(matching) / float64(len(results))
	if precision == 1.0 {
		return 1.0, "All results carry a required tag"
	}
	return precision, fmt.Sprintf("%d of %d results share no required tag", len(results)-matching, len(results))
}

// CalculateAgreement compares two rankings rank by rank. Positions agree when
// their scores match within tolerance, so swapped exact ties still agree.
func (m *MetricsCalculator) CalculateAgreement(a, b []models.RuleChunk) (float64, string) {
	if len(a) != len(b) {
		return 0.0, fmt.Sprintf("Result counts differ: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 1.0, "Both indexes returned nothing"
	}

	agree := 0
	for i := range a {
		if math.Abs(scoreOf(a[i])-scoreOf(b[i])) <= scoreTolerance {
			agree++
		}
	}
	agreement := float64(agree) / float64(len(a))
	if agreement == 1.0 {
		return 1.0, "Indexes agree at every rank"
	}
	return agreement, fmt.Sprintf("Indexes disagree at %d of %d ranks", len(a)-agree, len(a))
}

// EvaluateScenario scores one scenario from flat and brute-force results
func (m *MetricsCalculator) EvaluateScenario(
	scenario Scenario,
	flat []models.RuleChunk,
	brute []models.RuleChunk,
) TestResult {
	recall, recallDetail := m.CalculateContextRecall(texts(flat), scenario.ExpectedContext)
	precision, precisionDetail := m.CalculateTagPrecision(flat, scenario.RequiredTags)
	agreement, agreementDetail := m.CalculateAgreement(flat, brute)

	status := "FAIL"
	if recall >= 0.9 && precision == 1.0 && agreement == 1.0 {
		status = "PASS"
	}

	return TestResult{
		TestID:              scenario.ID,
		TestName:            scenario.Name,
		ContextRecallScore:  recall,
		TagPrecisionScore:   precision,
		IndexAgreementScore: agreement,
		OverallScore:        (recall + precision + agreement) / 3.0,
		Status:              status,
		Details: map[string]interface{}{
			"recall_detail":    recallDetail,
			"precision_detail": precisionDetail,
			"agreement_detail": agreementDetail,
			"results":          len(flat),
		},
	}
}

func texts(chunks []models.RuleChunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Text
	}
	return out
}

func scoreOf(c models.RuleChunk) float64 {
	if c.Metadata.Score == nil {
		return 0
	}
	return *c.Metadata.Score
}
