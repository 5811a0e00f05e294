// ABOUTME: Quiz question and result types for assessment generation
// ABOUTME: Enforced invariant: Answer is always one of Options before a question is surfaced
package models

// QuizQuestion is a multiple-choice question derived from an indexed chunk.
// Options holds between 2 and 4 distinct entries and Answer is always
// present verbatim among them.
type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Source   string   `json:"source"`
}

// Valid reports whether the question satisfies the answer-in-options,
// option-count, and option-distinctness invariants.
func (q QuizQuestion) Valid() bool {
	if len(q.Options) < 2 || len(q.Options) > 4 {
		return false
	}
	seen := make(map[string]bool, len(q.Options))
	answerPresent := false
	for _, opt := range q.Options {
		if seen[opt] {
			return false
		}
		seen[opt] = true
		if opt == q.Answer {
			answerPresent = true
		}
	}
	return answerPresent
}

// QuizResult records the outcome of a single answered question,
// kept per session for weak-area and progress analytics.
type QuizResult struct {
	Source  string `json:"source"`
	Topic   string `json:"topic"`
	Correct bool   `json:"is_correct"`
}

// Forecast is the output of score trend prediction over quiz history
type Forecast struct {
	PredictedScore float64 `json:"predicted_score"`
	Trend          string  `json:"trend"`
	Slope          float64 `json:"slope"`
}
