// ABOUTME: MCP tool handler implementations for the study buddy server
// ABOUTME: Wires ingestion, retrieval, quiz synthesis, and analytics behind the 5 tools

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/harper/studybuddy/internal/analytics"
	"github.com/harper/studybuddy/internal/index"
	"github.com/harper/studybuddy/internal/ingest"
	"github.com/harper/studybuddy/internal/llm"
	"github.com/harper/studybuddy/internal/models"
	"github.com/harper/studybuddy/internal/quiz"
	"github.com/harper/studybuddy/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	ingestor    *ingest.Ingestor
	index       *index.Memory
	client      *llm.Client
	retriever   *rag.Retriever
	generator   *rag.Generator
	synthesizer *quiz.Synthesizer
	recommender *analytics.Recommender
	logger      *analytics.Logger
}

// IngestFiles handles the ingest_files tool
func (h *Handlers) IngestFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := extractStringArray(request, "paths")
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths argument is required and must be a non-empty array of strings"), nil
	}

	chunks := h.ingestor.Ingest(paths)
	if len(chunks) == 0 {
		return mcp.NewToolResultError("no content could be extracted from the given files"), nil
	}

	if h.client == nil {
		return mcp.NewToolResultError("embedding model not loaded; cannot index content"), nil
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := h.client.EmbedBatch(texts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("embedding failed: %v", err)), nil
	}
	if err := h.index.Add(vectors, chunks); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("indexing failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"files_processed": len(paths),
		"chunks_indexed":  len(chunks),
		"topics":          h.index.Topics(),
	}
	return jsonResult(response)
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	if h.index.Len() == 0 {
		return mcp.NewToolResultError("no content found; ingest study material first"), nil
	}

	chunks := h.retriever.Retrieve(question)
	if maxChunks := request.GetInt("max_chunks", 0); maxChunks > 0 && maxChunks < len(chunks) {
		chunks = chunks[:maxChunks]
	}
	if len(chunks) == 0 {
		return mcp.NewToolResultError("no content found for this question"), nil
	}

	answer, err := h.generator.Answer(ctx, question, chunks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	sources := distinctSources(chunks)
	response := map[string]interface{}{
		"answer":  answer,
		"sources": sources,
	}
	return jsonResult(response)
}

// GenerateQuiz handles the generate_quiz tool
func (h *Handlers) GenerateQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic := request.GetString("topic", "")
	numQuestions := request.GetInt("num_questions", 5)

	chunks := h.index.ChunksByTopic(topic)
	if len(chunks) == 0 {
		return mcp.NewToolResultError("no content found for this topic"), nil
	}

	questions := h.synthesizer.Generate(ctx, chunks, numQuestions)
	if len(questions) == 0 {
		return mcp.NewToolResultError("could not generate quiz from the available material"), nil
	}

	response := map[string]interface{}{
		"questions": questions,
		"count":     len(questions),
	}
	return jsonResult(response)
}

// ListTopics handles the list_topics tool
func (h *Handlers) ListTopics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	response := map[string]interface{}{
		"topics":      h.index.Topics(),
		"chunk_count": h.index.Len(),
	}
	return jsonResult(response)
}

// StudyProgress handles the study_progress tool
func (h *Handlers) StudyProgress(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scores := extractIntArray(request, "scores")
	results := extractQuizResults(request, "results")

	forecast := analytics.ForecastNextScore(scores)
	weakAreas := analytics.AnalyzeWeakAreas(results)
	performance := analytics.ChapterPerformance(results)
	recommendation := h.recommender.RecommendNext(performance, h.index.Topics())

	response := map[string]interface{}{
		"forecast":       forecast,
		"weak_areas":     weakAreas,
		"performance":    performance,
		"recommendation": recommendation,
	}

	if h.logger != nil {
		stats, err := h.logger.IngestionStats()
		if err != nil {
			log.Printf("Warning: ingestion stats unavailable: %v", err)
		} else {
			response["ingestion_stats"] = stats
		}
	}

	return jsonResult(response)
}

func jsonResult(response map[string]interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

func distinctSources(chunks []models.Chunk) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, c := range chunks {
		if c.Metadata.Source == "" || seen[c.Metadata.Source] {
			continue
		}
		seen[c.Metadata.Source] = true
		sources = append(sources, c.Metadata.Source)
	}
	return sources
}

// extractStringArray pulls a string array argument out of the raw request map
func extractStringArray(request mcp.CallToolRequest, key string) []string {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func extractIntArray(request mcp.CallToolRequest, key string) []int {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	result := make([]int, 0, len(raw))
	for _, item := range raw {
		if n, ok := item.(float64); ok {
			result = append(result, int(n))
		}
	}
	return result
}

func extractQuizResults(request mcp.CallToolRequest, key string) []models.QuizResult {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return nil
	}
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	results := make([]models.QuizResult, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		r := models.QuizResult{}
		if s, ok := entry["source"].(string); ok {
			r.Source = s
		}
		if t, ok := entry["topic"].(string); ok {
			r.Topic = t
		}
		if c, ok := entry["is_correct"].(bool); ok {
			r.Correct = c
		}
		results = append(results, r)
	}
	return results
}
