// ABOUTME: Benchmark runner - executes scenarios through the full RAG pipeline
// ABOUTME: Ingests scenario documents, retrieves, generates, and collects metrics

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/studybuddy/internal/config"
	"github.com/harper/studybuddy/internal/index"
	"github.com/harper/studybuddy/internal/ingest"
	"github.com/harper/studybuddy/internal/llm"
	"github.com/harper/studybuddy/internal/rag"
)

// BenchmarkRunner executes benchmark tests against the real pipeline
type BenchmarkRunner struct {
	cfg     *config.Config
	client  *llm.Client
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner
func NewBenchmarkRunner(apiKey string, verbose bool) (*BenchmarkRunner, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.OpenAIKey = apiKey

	client, err := llm.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &BenchmarkRunner{
		cfg:     cfg,
		client:  client,
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}, nil
}

// RunTest executes a single benchmark test
func (r *BenchmarkRunner) RunTest(scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	// Write scenario documents to an isolated temp dir
	tmpDir, err := os.MkdirTemp("", fmt.Sprintf("studybuddy_bench_%s_", scenario.ID))
	if err != nil {
		return TestResult{}, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	paths := make([]string, 0, len(scenario.Documents))
	for _, doc := range scenario.Documents {
		path := filepath.Join(tmpDir, doc.Name)
		if err := os.WriteFile(path, []byte(doc.Content), 0644); err != nil {
			return TestResult{}, fmt.Errorf("failed to write document %s: %w", doc.Name, err)
		}
		paths = append(paths, path)
	}

	// Ingest: extract, segment, chunk
	ingestor := ingest.NewIngestor(
		ingest.NewPlainTextExtractor(),
		ingest.NewSegmenter(),
		ingest.NewChunker(r.cfg.MaxChunkChars),
		nil,
	)
	chunks := ingestor.Ingest(paths)
	if len(chunks) == 0 {
		return TestResult{}, fmt.Errorf("ingestion produced no chunks")
	}

	if r.verbose {
		fmt.Printf("✓ Ingested %d chunk(s) from %d document(s)\n", len(chunks), len(paths))
	}

	// Embed and index
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := r.client.EmbedBatch(texts)
	if err != nil {
		return TestResult{}, fmt.Errorf("embedding failed: %w", err)
	}

	idx := index.NewMemory()
	if err := idx.Add(vectors, chunks); err != nil {
		return TestResult{}, fmt.Errorf("indexing failed: %w", err)
	}

	// Retrieve and generate
	retriever := rag.NewRetriever(r.client, idx, r.cfg.TopK)
	contextChunks := retriever.Retrieve(scenario.Question)

	retrievedContext := make([]string, 0, len(contextChunks))
	for _, c := range contextChunks {
		retrievedContext = append(retrievedContext, c.Text)
	}

	if r.verbose {
		fmt.Printf("✓ Retrieved %d context chunk(s)\n", len(contextChunks))
		fmt.Printf("Q: %s\n", scenario.Question)
	}

	generator := rag.NewGenerator(r.client, r.cfg.ContextCharBudget)
	response, err := generator.Answer(context.Background(), scenario.Question, contextChunks)
	if err != nil {
		return TestResult{}, fmt.Errorf("generation failed: %w", err)
	}

	if r.verbose {
		preview := response
		if len(preview) > 150 {
			preview = preview[:150]
		}
		fmt.Printf("A: %s\n\n", preview)
	}

	result := r.metrics.EvaluateTest(scenario, response, retrievedContext, idx.Topics())

	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RESULTS: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Faithfulness: %.2f\n", result.FaithfulnessScore)
		fmt.Printf("Context Recall: %.2f\n", result.ContextRecallScore)
		fmt.Printf("Topic Coverage: %.2f\n", result.TopicCoverageScore)
		fmt.Printf("Overall Score: %.2f\n", result.OverallScore)
		fmt.Printf("Status: %s\n", result.Status)
		fmt.Printf("========================================\n\n")
	}

	return result, nil
}

// RunAllTests executes all benchmark tests
func (r *BenchmarkRunner) RunAllTests() ([]TestResult, error) {
	scenarios := GetAllTests()
	results := make([]TestResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.RunTest(scenario)
		if err != nil {
			return nil, fmt.Errorf("test %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// ExportResults exports test results to JSON
func (r *BenchmarkRunner) ExportResults(results []TestResult, outputPath string) error {
	summary := map[string]interface{}{
		"timestamp":   time.Now().Format(time.RFC3339),
		"total_tests": len(results),
		"passed":      0,
		"failed":      0,
		"results":     results,
	}

	for _, result := range results {
		if result.Status == "PASS" {
			summary["passed"] = summary["passed"].(int) + 1
		} else {
			summary["failed"] = summary["failed"].(int) + 1
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}
