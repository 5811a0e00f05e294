// ABOUTME: Turns retrieved chunks into validated multiple-choice questions.
// ABOUTME: Tries model-generated questions first, falling back to deterministic cloze blanks.

package quiz

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/harper/studybuddy/internal/models"
)

// LanguageModel produces free-text completions for question generation.
// A nil model is valid and restricts the synthesizer to cloze questions.
type LanguageModel interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const generationPrompt = `Generate one multiple-choice question from the study material below.
Respond in exactly this format, with no extra commentary:

Question: <question text>
Option A: <option text>
Option B: <option text>
Option C: <option text>
Option D: <option text>
Answer: <the correct option text>

Study material:
%s`

var (
	questionRe  = regexp.MustCompile(`(?m)^Question:\s*(.+)\s*$`)
	optionRe    = regexp.MustCompile(`(?m)^Option [A-D]:\s*(.+)\s*$`)
	answerRe    = regexp.MustCompile(`(?m)^Answer:\s*(.+)\s*$`)
	optionRefRe = regexp.MustCompile(`(?i)^Option\s+([A-D])\b`)
)

const (
	minSentenceChars = 30
	maxSentenceChars = 300
	minAnswerWord    = 5
	clozeBlank       = "______"
)

// Synthesizer produces up to N questions per request from a chunk set.
type Synthesizer struct {
	model         LanguageModel
	minChunkChars int
	rng           *rand.Rand
}

func NewSynthesizer(model LanguageModel, minChunkChars int) *Synthesizer {
	return &Synthesizer{
		model:         model,
		minChunkChars: minChunkChars,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Generate returns up to n questions derived from chunks. Chunks shorter than
// the eligibility minimum are skipped unless no chunk qualifies, in which case
// all chunks are considered. Chunks that yield neither a parsable model
// question nor a cloze candidate contribute nothing, so fewer than n questions
// may come back.
func (s *Synthesizer) Generate(ctx context.Context, chunks []models.Chunk, n int) []models.QuizQuestion {
	questions := []models.QuizQuestion{}
	if len(chunks) == 0 || n <= 0 {
		return questions
	}

	eligible := make([]models.Chunk, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Text) > s.minChunkChars {
			eligible = append(eligible, c)
		}
	}
	if len(eligible) == 0 {
		eligible = chunks
	}

	count := n
	if count > len(eligible) {
		count = len(eligible)
	}
	order := s.rng.Perm(len(eligible))

	pool := distractorPool(chunks)
	for _, idx := range order[:count] {
		chunk := eligible[idx]
		q := s.fromModel(ctx, chunk)
		if q == nil {
			q = s.fromCloze(chunk, pool)
		}
		if q != nil {
			questions = append(questions, *q)
		}
	}
	return questions
}

// fromModel asks the model for a question in the strict labelled format and
// parses it field by field. Returns nil on any parse or validation failure.
func (s *Synthesizer) fromModel(ctx context.Context, chunk models.Chunk) *models.QuizQuestion {
	if s.model == nil {
		return nil
	}

	output, err := s.model.Complete(ctx, fmt.Sprintf(generationPrompt, chunk.Text))
	if err != nil {
		log.Printf("Warning: quiz generation failed for chunk %s: %v", chunk.ChunkID, err)
		return nil
	}

	qm := questionRe.FindStringSubmatch(output)
	am := answerRe.FindStringSubmatch(output)
	if qm == nil || am == nil {
		return nil
	}

	var options []string
	for _, m := range optionRe.FindAllStringSubmatch(output, -1) {
		opt := strings.TrimSpace(m[1])
		if !contains(options, opt) {
			options = append(options, opt)
		}
	}
	if len(options) < 2 || len(options) > 4 {
		return nil
	}

	answer := strings.TrimSpace(am[1])
	if ref := optionRefRe.FindStringSubmatch(answer); ref != nil {
		pos := int(ref[1][0]-'A') % 32 // accept lowercase references
		if pos < len(options) {
			answer = options[pos]
		}
	}
	if !contains(options, answer) {
		if len(options) >= 4 {
			options = options[:3]
		}
		options = append(options, answer)
		s.rng.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})
	}

	q := &models.QuizQuestion{
		Question: strings.TrimSpace(qm[1]),
		Options:  options,
		Answer:   answer,
		Source:   sourceLabel(chunk),
	}
	if !q.Valid() {
		return nil
	}
	return q
}

// fromCloze blanks out one long word of a length-bounded sentence and fills
// the remaining options with distractors drawn from the wider document pool.
func (s *Synthesizer) fromCloze(chunk models.Chunk, pool []string) *models.QuizQuestion {
	var suitable []string
	for _, sent := range splitSentences(chunk.Text) {
		if len(sent) > minSentenceChars && len(sent) < maxSentenceChars {
			suitable = append(suitable, sent)
		}
	}
	if len(suitable) == 0 {
		return nil
	}
	sentence := suitable[s.rng.Intn(len(suitable))]

	var candidates []string
	for _, w := range strings.Fields(sentence) {
		if len(w) > minAnswerWord && isAlpha(w) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	answer := candidates[s.rng.Intn(len(candidates))]

	var distractors []string
	filtered := make([]string, 0, len(pool))
	for _, w := range pool {
		if w != answer {
			filtered = append(filtered, w)
		}
	}
	if len(filtered) >= 3 {
		for _, idx := range s.rng.Perm(len(filtered))[:3] {
			distractors = append(distractors, filtered[idx])
		}
	} else {
		distractors = []string{"Option A", "Option B", "Option C"}
	}

	options := append(distractors, answer)
	s.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return &models.QuizQuestion{
		Question: strings.ReplaceAll(sentence, answer, clozeBlank),
		Options:  options,
		Answer:   answer,
		Source:   sourceLabel(chunk),
	}
}

// distractorPool collects distinct long alphabetic words across every chunk
// so cloze distractors vary beyond the sentence's own chunk. Repeated words
// are kept once; options must stay pairwise distinct.
func distractorPool(chunks []models.Chunk) []string {
	var pool []string
	seen := make(map[string]bool)
	for _, c := range chunks {
		for _, w := range strings.Fields(c.Text) {
			if len(w) > minAnswerWord && isAlpha(w) && !seen[w] {
				seen[w] = true
				pool = append(pool, w)
			}
		}
	}
	return pool
}

func splitSentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i+1 < len(text); i++ {
		if (text[i] == '.' || text[i] == '?') && text[i+1] == ' ' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				out = append(out, s)
			}
			start = i + 2
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func isAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func sourceLabel(chunk models.Chunk) string {
	if chunk.Metadata.Source == "" {
		return "Unknown"
	}
	return chunk.Metadata.Source
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
