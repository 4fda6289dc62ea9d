// ABOUTME: Benchmark runner that builds flat and brute-force rule stores
// ABOUTME: Executes scenarios against both and collects scored results

package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harper/pagesmith/internal/index"
	"github.com/harper/pagesmith/internal/rulestore"
)

// TestResult is the scored outcome of one scenario
type TestResult struct {
	TestID              string                 `json:"test_id"`
	TestName            string                 `json:"test_name"`
	ContextRecallScore  float64                `json:"context_recall"`
	TagPrecisionScore   float64                `json:"tag_precision"`
	IndexAgreementScore float64                `json:"index_agreement"`
	OverallScore        float64                `json:"overall"`
	Status              string                 `json:"status"`
	Details             map[string]interface{} `json:"details"`
}

// BenchmarkRunner executes retrieval scenarios
type BenchmarkRunner struct {
	flat    *rulestore.Store
	brute   *rulestore.Store
	metrics *MetricsCalculator
	out     io.Writer
	verbose bool
}

// NewBenchmarkRunner embeds GoldenRules into a flat and a brute-force store
func NewBenchmarkRunner(ctx context.Context, embedder rulestore.Embedder, logger *zap.Logger, out io.Writer, verbose bool) (*BenchmarkRunner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stores := make(map[index.Kind]*rulestore.Store, 2)
	for _, kind := range []index.Kind{index.KindFlat, index.KindBruteForce} {
		builder, err := index.BuilderFor(kind)
		if err != nil {
			return nil, err
		}
		store := rulestore.New(embedder,
			rulestore.WithIndexBuilder(builder),
			rulestore.WithChunking(ChunkWords, 0),
			rulestore.WithLogger(logger.Named(string(kind))))
		if _, err := store.Build(ctx, GoldenRules, nil); err != nil {
			return nil, fmt.Errorf("failed to build %s store: %w", kind, err)
		}
		stores[kind] = store
	}

	return &BenchmarkRunner{
		flat:    stores[index.KindFlat],
		brute:   stores[index.KindBruteForce],
		metrics: NewMetricsCalculator(),
		out:     out,
		verbose: verbose,
	}, nil
}

// Chunks returns the number of chunks in the benchmark corpus
func (r *BenchmarkRunner) Chunks() int {
	return r.flat.Len()
}

// RunTest executes a single scenario
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario Scenario) TestResult {
	start := time.Now()
	flat := r.flat.Query(ctx, scenario.Query, scenario.TopK, scenario.RequiredTags)
	brute := r.brute.Query(ctx, scenario.Query, scenario.TopK, scenario.RequiredTags)

	result := r.metrics.EvaluateScenario(scenario, flat, brute)
	result.Details["duration_ms"] = time.Since(start).Milliseconds()

	if r.verbose {
		fmt.Fprintf(r.out, "\n[%s] %s\n", scenario.ID, scenario.Query)
		for i, chunk := range flat {
			fmt.Fprintf(r.out, "  %d. %.3f [%s] %s\n", i+1, scoreOf(chunk), strings.Join(chunk.Metadata.Tags, ","), chunk.Text)
		}
		fmt.Fprintf(r.out, "  recall=%.2f precision=%.2f agreement=%.2f %s\n",
			result.ContextRecallScore, result.TagPrecisionScore, result.IndexAgreementScore, result.Status)
	}
	return result
}

// RunAllTests executes every scenario in order
func (r *BenchmarkRunner) RunAllTests(ctx context.Context) []TestResult {
	scenarios := GetAllScenarios()
	results := make([]TestResult, 0, len(scenarios))
	for _, scenario := range scenarios {
		results = append(results, r.RunTest(ctx, scenario))
	}
	return results
}

// ExportResults writes results to outputPath as indented JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	data, err := json.MarshalIndent(map[string]interface{}{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"chunks":       r.Chunks(),
		"results":      results,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	fmt.Fprintf(r.out, "✓ Results exported to: %s\n", outputPath)
	return nil
}
