// ABOUTME: Tests for quiz synthesis covering the model parse path and cloze fallback.
// ABOUTME: Uses a fake language model to exercise parse, repair, and degradation branches.

package quiz

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/harper/studybuddy/internal/models"
)

type fakeQuizModel struct {
	output    string
	err       error
	gotPrompt string
}

func (f *fakeQuizModel) Complete(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func seeded(model LanguageModel, minChars int) *Synthesizer {
	s := NewSynthesizer(model, minChars)
	s.rng = rand.New(rand.NewSource(1))
	return s
}

func chunkWith(text, source string) models.Chunk {
	return models.Chunk{
		ChunkID: "chunk_test",
		Text:    text,
		Metadata: models.ChunkMetadata{
			Topic:  "Biology",
			Source: source,
		},
	}
}

func TestGenerate_EmptyChunks(t *testing.T) {
	s := seeded(nil, 50)
	got := s.Generate(context.Background(), nil, 5)
	if got == nil {
		t.Fatal("Generate() = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len(questions) = %d, want 0", len(got))
	}
}

func TestGenerate_ModelParsePath(t *testing.T) {
	model := &fakeQuizModel{output: `Question: What organelle produces energy?
Option A: Mitochondria
Option B: Nucleus
Option C: Ribosome
Option D: Chloroplast
Answer: Mitochondria`}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria produces energy for the cell through respiration.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	q := got[0]
	if q.Question != "What organelle produces energy?" {
		t.Errorf("Question = %q, want %q", q.Question, "What organelle produces energy?")
	}
	if len(q.Options) != 4 {
		t.Errorf("len(Options) = %d, want 4", len(q.Options))
	}
	if q.Answer != "Mitochondria" {
		t.Errorf("Answer = %q, want %q", q.Answer, "Mitochondria")
	}
	if q.Source != "bio.txt" {
		t.Errorf("Source = %q, want %q", q.Source, "bio.txt")
	}
	if !strings.Contains(model.gotPrompt, chunk.Text) {
		t.Error("prompt does not embed the chunk text")
	}
}

func TestGenerate_AnswerOptionReference(t *testing.T) {
	model := &fakeQuizModel{output: `Question: What organelle produces energy?
Option A: Nucleus
Option B: Mitochondria
Option C: Ribosome
Answer: Option B`}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria produces energy for the cell through respiration.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	if got[0].Answer != "Mitochondria" {
		t.Errorf("Answer = %q, want remapped option text %q", got[0].Answer, "Mitochondria")
	}
}

func TestGenerate_AnswerRepairAppendsAndShuffles(t *testing.T) {
	model := &fakeQuizModel{output: `Question: What organelle produces energy?
Option A: Nucleus
Option B: Ribosome
Option C: Chloroplast
Answer: Mitochondria`}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria produces energy for the cell through respiration.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	q := got[0]
	if !contains(q.Options, q.Answer) {
		t.Errorf("Answer %q missing from options %v after repair", q.Answer, q.Options)
	}
	if len(q.Options) < 2 || len(q.Options) > 4 {
		t.Errorf("len(Options) = %d, want between 2 and 4", len(q.Options))
	}
	if !q.Valid() {
		t.Error("repaired question failed validation")
	}
}

func TestGenerate_ParseFailureFallsBackToCloze(t *testing.T) {
	model := &fakeQuizModel{output: "Sorry, I can't format quizzes today."}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1 cloze question", len(got))
	}
	if !strings.Contains(got[0].Question, clozeBlank) {
		t.Errorf("Question = %q, want a cloze blank", got[0].Question)
	}
}

func TestGenerate_ModelErrorFallsBackToCloze(t *testing.T) {
	model := &fakeQuizModel{err: errors.New("rate limited")}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1 cloze question", len(got))
	}
	if !strings.Contains(got[0].Question, clozeBlank) {
		t.Errorf("Question = %q, want a cloze blank", got[0].Question)
	}
}

func TestGenerate_ClozeQuestion(t *testing.T) {
	// One candidate word longer than five letters, pool too small for real
	// distractors, so the placeholders fill the remaining options.
	s := seeded(nil, 10)
	chunk := chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	q := got[0]
	if q.Answer != "mitochondria" {
		t.Errorf("Answer = %q, want %q", q.Answer, "mitochondria")
	}
	if !strings.Contains(q.Question, clozeBlank) {
		t.Errorf("Question = %q, want a cloze blank", q.Question)
	}
	if strings.Contains(q.Question, "mitochondria") {
		t.Errorf("Question = %q, still contains the answer", q.Question)
	}
	for _, placeholder := range []string{"Option A", "Option B", "Option C"} {
		if !contains(q.Options, placeholder) {
			t.Errorf("Options = %v, missing placeholder %q", q.Options, placeholder)
		}
	}
	if !contains(q.Options, "mitochondria") {
		t.Errorf("Options = %v, missing the answer", q.Options)
	}
	if q.Source != "bio.txt" {
		t.Errorf("Source = %q, want %q", q.Source, "bio.txt")
	}
}

func TestGenerate_ClozeDistractorsFromPool(t *testing.T) {
	s := seeded(nil, 10)
	chunks := []models.Chunk{
		chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt"),
		chunkWith("Photosynthesis converts sunlight chemically inside chloroplast membranes constantly.", "bio.txt"),
	}

	got := s.Generate(context.Background(), chunks, 2)
	if len(got) != 2 {
		t.Fatalf("len(questions) = %d, want 2", len(got))
	}
	for _, q := range got {
		if len(q.Options) != 4 {
			t.Errorf("len(Options) = %d, want 4", len(q.Options))
		}
		if !contains(q.Options, q.Answer) {
			t.Errorf("Answer %q missing from options %v", q.Answer, q.Options)
		}
		if !q.Valid() {
			t.Errorf("question %+v failed validation", q)
		}
	}
}

func TestGenerate_ClozeOptionsDistinctWithRepeatedWords(t *testing.T) {
	// A chunk that repeats its long words must not surface the same word twice
	// among a question's options.
	chunk := chunkWith("The mitochondria mitochondria generates energy energy inside inside the living membrane constantly.", "bio.txt")

	for seed := int64(0); seed < 10; seed++ {
		s := NewSynthesizer(nil, 10)
		s.rng = rand.New(rand.NewSource(seed))

		got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
		if len(got) != 1 {
			t.Fatalf("seed %d: len(questions) = %d, want 1", seed, len(got))
		}
		q := got[0]
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			if seen[opt] {
				t.Errorf("seed %d: option %q repeated in %v (answer %q)", seed, opt, q.Options, q.Answer)
			}
			seen[opt] = true
		}
		if !q.Valid() {
			t.Errorf("seed %d: question %+v failed validation", seed, q)
		}
	}
}

func TestGenerate_ModelDuplicateOptionsDeduplicated(t *testing.T) {
	model := &fakeQuizModel{output: `Question: What organelle produces energy?
Option A: Mitochondria
Option B: Mitochondria
Option C: Nucleus
Option D: Ribosome
Answer: Nucleus`}
	s := seeded(model, 10)
	chunk := chunkWith("The mitochondria produces energy for the cell through respiration.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	q := got[0]
	if len(q.Options) != 3 {
		t.Errorf("len(Options) = %d, want 3 after removing the duplicate", len(q.Options))
	}
	if !contains(q.Options, "Mitochondria") || !contains(q.Options, "Nucleus") || !contains(q.Options, "Ribosome") {
		t.Errorf("Options = %v, want the three distinct option texts", q.Options)
	}
	if !q.Valid() {
		t.Errorf("question %+v failed validation", q)
	}
}

func TestGenerate_SkipsChunkWithoutUsableSentence(t *testing.T) {
	s := seeded(nil, 10)
	chunk := chunkWith("Cats purr. Dogs bark. Owls hoot. Fish swim. Bees buzz. Ants march.", "pets.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 3)
	if len(got) != 0 {
		t.Errorf("len(questions) = %d, want 0 for chunk with no eligible sentence", len(got))
	}
}

func TestGenerate_EligibilityFallsBackToAllChunks(t *testing.T) {
	// Every chunk is below the minimum, so the filter relaxes to all of them.
	s := seeded(nil, 500)
	chunk := chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Errorf("len(questions) = %d, want 1 from relaxed eligibility", len(got))
	}
}

func TestGenerate_CapsAtEligibleChunkCount(t *testing.T) {
	s := seeded(nil, 10)
	chunks := []models.Chunk{
		chunkWith("The mitochondria is the cell power unit of a body.", "bio.txt"),
		chunkWith("Photosynthesis converts sunlight chemically inside chloroplast membranes constantly.", "bio.txt"),
	}

	got := s.Generate(context.Background(), chunks, 10)
	if len(got) > 2 {
		t.Errorf("len(questions) = %d, want at most 2", len(got))
	}
}

func TestGenerate_UnknownSourceLabel(t *testing.T) {
	s := seeded(nil, 10)
	chunk := chunkWith("The mitochondria is the cell power unit of a body.", "")

	got := s.Generate(context.Background(), []models.Chunk{chunk}, 1)
	if len(got) != 1 {
		t.Fatalf("len(questions) = %d, want 1", len(got))
	}
	if got[0].Source != "Unknown" {
		t.Errorf("Source = %q, want %q", got[0].Source, "Unknown")
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("First sentence here. Second one follows? Third trails off")
	want := []string{"First sentence here.", "Second one follows?", "Third trails off"}
	if len(got) != len(want) {
		t.Fatalf("len(sentences) = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsAlpha(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"mitochondria", true},
		{"cell's", false},
		{"42", false},
		{"", false},
		{"énergie", true},
	}
	for _, tt := range tests {
		if got := isAlpha(tt.word); got != tt.want {
			t.Errorf("isAlpha(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}
