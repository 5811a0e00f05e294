// ABOUTME: Shared session wiring and helpers for CLI commands
// ABOUTME: Builds the ingest-embed-index pipeline used by ask, summarize, quiz, and topics
package commands

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/harper/studybuddy/internal/analytics"
	"github.com/harper/studybuddy/internal/config"
	"github.com/harper/studybuddy/internal/index"
	"github.com/harper/studybuddy/internal/ingest"
	"github.com/harper/studybuddy/internal/llm"
	"github.com/harper/studybuddy/internal/models"
	"github.com/harper/studybuddy/internal/rag"
)

// session holds the in-process pipeline for one CLI invocation.
type session struct {
	cfg    *config.Config
	client *llm.Client // nil when no API key is configured
	index  *index.Memory
	chunks []models.Chunk
	logger *analytics.Logger
}

func loadConfig() (*config.Config, error) {
	// Load .env for API keys
	_ = godotenv.Load()
	return config.Load(configFile)
}

// buildSession ingests the given files and indexes their chunks. A missing
// API key degrades the session rather than failing it: retrieval and
// generation fall back to their diagnostic outputs.
func buildSession(paths []string) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	client, err := llm.NewClient(cfg)
	if err != nil {
		if !quiet {
			log.Printf("Warning: language model unavailable: %v", err)
		}
		client = nil
	}

	logger, err := analytics.OpenLogger(analytics.DefaultDBPath())
	if err != nil {
		if !quiet {
			log.Printf("Warning: analytics logging disabled: %v", err)
		}
		logger = nil
	}

	var ingestionLogger ingest.IngestionLogger
	if logger != nil {
		ingestionLogger = logger
	}
	ingestor := ingest.NewIngestor(
		ingest.NewPlainTextExtractor(),
		ingest.NewSegmenter(),
		ingest.NewChunker(cfg.MaxChunkChars),
		ingestionLogger,
	)

	s := &session{
		cfg:    cfg,
		client: client,
		index:  index.NewMemory(),
		chunks: ingestor.Ingest(paths),
		logger: logger,
	}

	if len(s.chunks) > 0 && client != nil {
		texts := make([]string, len(s.chunks))
		for i, c := range s.chunks {
			texts[i] = c.Text
		}
		vectors, err := client.EmbedBatch(texts)
		if err != nil {
			return nil, fmt.Errorf("embedding chunks: %w", err)
		}
		if err := s.index.Add(vectors, s.chunks); err != nil {
			return nil, fmt.Errorf("indexing chunks: %w", err)
		}
	}

	return s, nil
}

// Close releases the session's analytics database handle.
func (s *session) Close() {
	if s.logger != nil {
		_ = s.logger.Close()
	}
}

// retriever builds a retriever over the session index, degraded when the
// embedding client is missing.
func (s *session) retriever() *rag.Retriever {
	var embedder rag.Embedder
	if s.client != nil {
		embedder = s.client
	}
	return rag.NewRetriever(embedder, s.index, s.cfg.TopK)
}

// generator builds an answer generator, degraded when the model is missing.
func (s *session) generator() *rag.Generator {
	var model rag.StreamingModel
	if s.client != nil {
		model = s.client
	}
	return rag.NewGenerator(model, s.cfg.ContextCharBudget)
}

// chunksForTopic returns the session chunks restricted to topic, or all
// chunks when topic is empty.
func (s *session) chunksForTopic(topic string) []models.Chunk {
	if topic == "" {
		return s.chunks
	}
	var filtered []models.Chunk
	for _, c := range s.chunks {
		if c.Metadata.Topic == topic {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
