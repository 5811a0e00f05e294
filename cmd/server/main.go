// ABOUTME: Main entry point for the studybuddy MCP server with stdio transport
// ABOUTME: Initializes the ingest-index-retrieve pipeline and registers all tools
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/studybuddy/internal/analytics"
	"github.com/harper/studybuddy/internal/config"
	"github.com/harper/studybuddy/internal/index"
	"github.com/harper/studybuddy/internal/ingest"
	"github.com/harper/studybuddy/internal/llm"
	"github.com/harper/studybuddy/internal/mcp"
	"github.com/harper/studybuddy/internal/quiz"
	"github.com/harper/studybuddy/internal/rag"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - embeddings and generation will run degraded")
	}

	cfg, err := config.LoadEnv()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		log.Printf("Warning: language model unavailable: %v", err)
		client = nil
	}

	logger, err := analytics.OpenLogger(analytics.DefaultDBPath())
	if err != nil {
		log.Printf("Warning: analytics logging disabled: %v", err)
		logger = nil
	}

	var ingestionLogger ingest.IngestionLogger
	if logger != nil {
		ingestionLogger = logger
		defer func() { _ = logger.Close() }()
	}
	ingestor := ingest.NewIngestor(
		ingest.NewPlainTextExtractor(),
		ingest.NewSegmenter(),
		ingest.NewChunker(cfg.MaxChunkChars),
		ingestionLogger,
	)

	idx := index.NewMemory()

	var embedder rag.Embedder
	var model rag.StreamingModel
	var quizModel quiz.LanguageModel
	if client != nil {
		embedder = client
		model = client
		quizModel = client
	}
	retriever := rag.NewRetriever(embedder, idx, cfg.TopK)
	generator := rag.NewGenerator(model, cfg.ContextCharBudget)
	synthesizer := quiz.NewSynthesizer(quizModel, cfg.MinQuizChunkChars)

	server := mcpserver.NewMCPServer(
		"Studybuddy",
		"0.1.0",
	)

	mcp.RegisterTools(server, ingestor, idx, client, retriever, generator, synthesizer, logger)

	log.Println("Studybuddy MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
