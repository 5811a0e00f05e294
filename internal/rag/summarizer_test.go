// ABOUTME: Tests for windowed abstractive summarization
// ABOUTME: Verifies degraded mode, window splitting, and per-window failure tolerance
package rag

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// countingModel summarizes each window with a fixed reply, optionally
// failing on selected calls
type countingModel struct {
	calls  int
	failOn int // 1-based call number to fail, 0 for never
}

func (m *countingModel) Complete(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.failOn == m.calls {
		return "", errors.New("window failed")
	}
	return "summary piece", nil
}

func TestSummarize_DegradedWithoutModel(t *testing.T) {
	s := NewSummarizer(nil)

	got := s.Summarize(context.Background(), "some text")
	if !strings.Contains(got, "not loaded") {
		t.Errorf("Summarize() = %q, want diagnostic", got)
	}
}

func TestSummarize_EmptyText(t *testing.T) {
	s := NewSummarizer(&countingModel{})

	got := s.Summarize(context.Background(), "   ")
	if !strings.Contains(got, "No content") {
		t.Errorf("Summarize() = %q, want no-content notice", got)
	}
}

func TestSummarize_SplitsLongTextIntoWindows(t *testing.T) {
	model := &countingModel{}
	s := NewSummarizer(model)

	text := strings.Repeat("Cells divide through mitosis. ", 100) // ~3000 chars
	got := s.Summarize(context.Background(), text)

	if model.calls != 3 {
		t.Errorf("model called %d times, want 3 windows", model.calls)
	}
	if got != "summary piece summary piece summary piece" {
		t.Errorf("Summarize() = %q", got)
	}
}

func TestSummarize_SkipsFailedWindows(t *testing.T) {
	model := &countingModel{failOn: 2}
	s := NewSummarizer(model)

	text := strings.Repeat("Atoms bond into molecules constantly. ", 100) // ~3800 chars
	got := s.Summarize(context.Background(), text)

	if !strings.Contains(got, "summary piece") {
		t.Errorf("Summarize() = %q, want surviving windows joined", got)
	}
	if strings.Count(got, "summary piece") != model.calls-1 {
		t.Errorf("got %d pieces from %d calls with one failure", strings.Count(got, "summary piece"), model.calls)
	}
}

func TestSummarize_AllWindowsFailed(t *testing.T) {
	s := NewSummarizer(&failingModel{})

	got := s.Summarize(context.Background(), "short text")
	if !strings.Contains(got, "Could not summarize") {
		t.Errorf("Summarize() = %q, want failure notice", got)
	}
}

type failingModel struct{}

func (failingModel) Complete(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("always down")
}
