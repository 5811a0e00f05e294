// ABOUTME: Generator produces grounded answers from a query and retrieved context
// ABOUTME: Supports blocking and streamed delivery; the stream always terminates, even on model failure
package rag

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/harper/studybuddy/internal/models"
)

// LanguageModel is a single-string-in, single-string-out text generator
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// StreamingModel additionally supports incremental fragment delivery
type StreamingModel interface {
	LanguageModel
	StreamTo(ctx context.Context, prompt string, emit func(fragment string) error) error
}

const (
	// truncationMarker is appended when assembled context exceeds the budget
	truncationMarker = "...(truncated)"
	// modelUnavailableNotice prefixes degraded answers when no model is loaded
	modelUnavailableNotice = "**Language model not loaded.**\n\nContext:\n"
	// streamFailureNotice is the single fragment emitted when streaming generation fails
	streamFailureNotice = "\n\n**Generation failed.** Please try asking again."
)

// Generator formats grounded prompts and drives the language model
type Generator struct {
	model      StreamingModel
	charBudget int
}

// NewGenerator creates a Generator. A nil model puts the generator in
// degraded mode: answers echo the assembled context with a diagnostic.
func NewGenerator(model StreamingModel, charBudget int) *Generator {
	if charBudget <= 0 {
		charBudget = 1000
	}
	return &Generator{
		model:      model,
		charBudget: charBudget,
	}
}

// Answer generates a complete grounded answer synchronously
func (g *Generator) Answer(ctx context.Context, query string, contextChunks []models.Chunk) (string, error) {
	contextText := g.assembleContext(contextChunks)

	if g.model == nil {
		return modelUnavailableNotice + contextText, nil
	}

	answer, err := g.model.Complete(ctx, buildPrompt(contextText, query))
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return answer, nil
}

// AnswerStream generates an answer on a background worker and returns a
// channel of text fragments immediately. The channel is always closed:
// on model failure a single user-visible error fragment precedes
// termination, so consumers never block indefinitely.
func (g *Generator) AnswerStream(ctx context.Context, query string, contextChunks []models.Chunk) <-chan string {
	out := make(chan string, 16)
	contextText := g.assembleContext(contextChunks)

	// send blocks until the fragment is delivered or the context ends,
	// so a consumer that walks away cannot strand the worker
	send := func(fragment string) error {
		select {
		case out <- fragment:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	go func() {
		defer close(out)

		if g.model == nil {
			if send(modelUnavailableNotice) != nil {
				return
			}
			send(contextText)
			return
		}

		err := g.model.StreamTo(ctx, buildPrompt(contextText, query), send)
		if err != nil && ctx.Err() == nil {
			send(streamFailureNotice)
		}
	}()

	return out
}

// assembleContext joins chunk texts with blank-line separators and
// truncates to the character budget to respect the model's token window.
// The cut lands on a rune boundary so multibyte text is never split.
func (g *Generator) assembleContext(chunks []models.Chunk) string {
	texts := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		texts = append(texts, ch.Text)
	}
	contextText := strings.Join(texts, "\n\n")

	if len(contextText) > g.charBudget {
		cut := g.charBudget
		for cut > 0 && !utf8.RuneStart(contextText[cut]) {
			cut--
		}
		contextText = contextText[:cut] + truncationMarker
	}
	return contextText
}

// buildPrompt renders the deterministic grounded-answer template
func buildPrompt(contextText, query string) string {
	return fmt.Sprintf(
		"Answer the following question based on the context below:\n\nContext:\n%s\n\nQuestion: %s\n\nAnswer:",
		contextText, query)
}
