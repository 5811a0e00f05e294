// ABOUTME: MCP tool definitions and registration for the study buddy server
// ABOUTME: Defines JSON schemas for the ingestion, Q&A, quiz, and progress tools

package mcp

import (
	"github.com/harper/studybuddy/internal/analytics"
	"github.com/harper/studybuddy/internal/index"
	"github.com/harper/studybuddy/internal/ingest"
	"github.com/harper/studybuddy/internal/llm"
	"github.com/harper/studybuddy/internal/quiz"
	"github.com/harper/studybuddy/internal/rag"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, ingestor *ingest.Ingestor, idx *index.Memory, client *llm.Client, retriever *rag.Retriever, generator *rag.Generator, synthesizer *quiz.Synthesizer, logger *analytics.Logger) *Handlers {
	handlers := &Handlers{
		ingestor:    ingestor,
		index:       idx,
		client:      client,
		retriever:   retriever,
		generator:   generator,
		synthesizer: synthesizer,
		recommender: analytics.NewRecommender(),
		logger:      logger,
	}

	// 1. ingest_files - Segment, chunk, and index study material
	server.AddTool(mcp.Tool{
		Name:        "ingest_files",
		Description: "Ingest study material files: extract text, split into topic segments, chunk, embed, and index for retrieval.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "File paths to ingest",
				},
			},
			Required: []string{"paths"},
		},
	}, handlers.IngestFiles)

	// 2. ask_question - Retrieval-augmented question answering
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question from the indexed study material using retrieval-augmented generation.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer",
				},
				"max_chunks": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of context chunks to use (default: retriever setting)",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 3. generate_quiz - Build multiple-choice questions from indexed chunks
	server.AddTool(mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate multiple-choice quiz questions from the indexed study material, optionally restricted to one topic.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "Optional topic to restrict questions to",
				},
				"num_questions": map[string]interface{}{
					"type":        "number",
					"description": "Number of questions to generate (default: 5)",
					"default":     5,
				},
			},
		},
	}, handlers.GenerateQuiz)

	// 4. list_topics - List indexed topics
	server.AddTool(mcp.Tool{
		Name:        "list_topics",
		Description: "List all topics currently indexed from ingested study material.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListTopics)

	// 5. study_progress - Analytics over quiz history
	server.AddTool(mcp.Tool{
		Name:        "study_progress",
		Description: "Analyze quiz history: forecast the next score, surface weak areas, report per-topic accuracy, and recommend what to study next.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"scores": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "number"},
					"description": "Past quiz scores in attempt order",
				},
				"results": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"source":     map[string]interface{}{"type": "string"},
							"topic":      map[string]interface{}{"type": "string"},
							"is_correct": map[string]interface{}{"type": "boolean"},
						},
					},
					"description": "Detailed per-question results for weak-area analysis",
				},
			},
		},
	}, handlers.StudyProgress)

	return handlers
}
