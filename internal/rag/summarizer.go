// ABOUTME: Summarizer produces abstractive summaries of study material
// ABOUTME: Splits long text into windows, summarizes each, and joins the results
package rag

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// summaryWindowChars bounds each summarization request to stay inside
// the model's context window
const summaryWindowChars = 1024

// Summarizer generates summaries via the language model
type Summarizer struct {
	model LanguageModel
}

// NewSummarizer creates a Summarizer; a nil model degrades to a diagnostic
func NewSummarizer(model LanguageModel) *Summarizer {
	return &Summarizer{model: model}
}

// Summarize produces a summary of text. Failed windows are skipped
// rather than aborting the whole summary.
func (s *Summarizer) Summarize(ctx context.Context, text string) string {
	if s.model == nil {
		return "**Summarization model not loaded.**"
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "No content found to summarize."
	}

	var summaries []string
	for _, window := range splitWindows(text, summaryWindowChars) {
		prompt := fmt.Sprintf("Summarize the following study material concisely:\n\n%s", window)
		summary, err := s.model.Complete(ctx, prompt)
		if err != nil {
			log.Printf("Warning: summarizing window failed: %v", err)
			continue
		}
		summaries = append(summaries, strings.TrimSpace(summary))
	}

	if len(summaries) == 0 {
		return "Could not summarize the available material."
	}
	return strings.Join(summaries, " ")
}

// splitWindows slices text into fixed-size character windows
func splitWindows(text string, size int) []string {
	var windows []string
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		windows = append(windows, text[start:end])
	}
	return windows
}
