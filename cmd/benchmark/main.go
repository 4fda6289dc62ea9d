// ABOUTME: Command-line runner for the golden-rule retrieval benchmarks
// ABOUTME: Builds flat and brute-force stores, scores every scenario and exports JSON

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/harper/pagesmith/benchmarks/retrieval"
	"github.com/harper/pagesmith/internal/llm"
	"github.com/harper/pagesmith/internal/logging"
	"github.com/harper/pagesmith/internal/rulestore"
)

func main() {
	testID := flag.String("test", "", "Run a specific scenario by ID. If empty, runs all scenarios.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	embedderName := flag.String("embedder", "hash", "Embedder to benchmark: hash or openai")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (continuing anyway): %v", err)
	}

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.New(level, "console")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var embedder rulestore.Embedder
	switch *embedderName {
	case "hash":
		embedder = llm.NewHashEmbedder(0)
	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY environment variable is required for -embedder openai")
		}
		client, err := llm.NewOpenAIClient(apiKey)
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
		embedder = client
	default:
		log.Fatalf("Unknown embedder: %s (valid options: hash, openai)", *embedderName)
	}

	fmt.Println("========================================")
	fmt.Println("pagesmith Retrieval Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	ctx := context.Background()
	runner, err := retrieval.NewBenchmarkRunner(ctx, embedder, logger, os.Stdout, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}
	fmt.Printf("Embedded %d golden rule chunks with the %s embedder\n", runner.Chunks(), *embedderName)

	var results []retrieval.TestResult
	if *testID == "" {
		results = runner.RunAllTests(ctx)
	} else {
		scenario, ok := retrieval.GetScenario(*testID)
		if !ok {
			log.Fatalf("Unknown scenario ID: %s", *testID)
		}
		results = []retrieval.TestResult{runner.RunTest(ctx, scenario)}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0
	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.TestID, result.TestName)
		fmt.Printf("  Context Recall:  %.2f\n", result.ContextRecallScore)
		fmt.Printf("  Tag Precision:   %.2f\n", result.TagPrecisionScore)
		fmt.Printf("  Index Agreement: %.2f\n", result.IndexAgreementScore)
		fmt.Printf("  Overall: %.2f\n", result.OverallScore)
		fmt.Printf("  Status: %s\n", result.Status)

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Tests: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	if err := runner.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
