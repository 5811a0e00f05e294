// ABOUTME: Predictive analytics over quiz history: weak areas, score forecasting,
// ABOUTME: per-topic accuracy, and learning speed / time-to-mastery estimates.

package analytics

import (
	"fmt"
	"math"
	"sort"

	"github.com/harper/studybuddy/internal/models"
)

// WeakArea pairs a source document with its observed error rate.
type WeakArea struct {
	Source    string  `json:"source"`
	ErrorRate float64 `json:"error_rate"`
}

// LearningMetrics describes how fast mastery is being approached.
type LearningMetrics struct {
	LearningSpeed string `json:"learning_speed"`
	TimeToMastery string `json:"time_to_mastery"`
}

// Trend labels emitted by ForecastNextScore.
const (
	TrendImproving    = "Improving"
	TrendDeclining    = "Declining"
	TrendStable       = "Stable"
	TrendInsufficient = "Insufficient Data"
)

// ForecastNextScore predicts the next quiz score from past scores using
// least-squares linear regression over attempt numbers 1..n. Fewer than two
// data points yields an Insufficient Data forecast rather than an error.
func ForecastNextScore(history []int) models.Forecast {
	if len(history) < 2 {
		return models.Forecast{Trend: TrendInsufficient}
	}

	n := float64(len(history))
	var sumX, sumY, sumXY, sumXX float64
	for i, score := range history {
		x := float64(i + 1)
		y := float64(score)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	slope := (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / n
	predicted := slope*(n+1) + intercept

	trend := TrendStable
	if slope > 0.1 {
		trend = TrendImproving
	} else if slope < -0.1 {
		trend = TrendDeclining
	}

	return models.Forecast{
		PredictedScore: round2(predicted),
		Trend:          trend,
		Slope:          slope,
	}
}

// AnalyzeWeakAreas computes the per-source error rate over detailed quiz
// results. Only sources with at least one wrong answer appear, sorted by
// error rate descending. Rates are rounded to two decimals.
func AnalyzeWeakAreas(history []models.QuizResult) []WeakArea {
	if len(history) == 0 {
		return nil
	}

	type stats struct{ total, wrong int }
	bySource := make(map[string]*stats)
	for _, r := range history {
		source := r.Source
		if source == "" {
			source = "Unknown"
		}
		s, ok := bySource[source]
		if !ok {
			s = &stats{}
			bySource[source] = s
		}
		s.total++
		if !r.Correct {
			s.wrong++
		}
	}

	var weak []WeakArea
	for source, s := range bySource {
		if s.wrong == 0 {
			continue
		}
		weak = append(weak, WeakArea{
			Source:    source,
			ErrorRate: round2(float64(s.wrong) / float64(s.total)),
		})
	}
	sort.Slice(weak, func(i, j int) bool {
		if weak[i].ErrorRate != weak[j].ErrorRate {
			return weak[i].ErrorRate > weak[j].ErrorRate
		}
		return weak[i].Source < weak[j].Source
	})
	return weak
}

// ChapterPerformance computes accuracy per topic, rounded to two decimals.
func ChapterPerformance(history []models.QuizResult) map[string]float64 {
	if len(history) == 0 {
		return map[string]float64{}
	}

	type stats struct{ total, correct int }
	byTopic := make(map[string]*stats)
	for _, r := range history {
		topic := r.Topic
		if topic == "" {
			topic = "General"
		}
		s, ok := byTopic[topic]
		if !ok {
			s = &stats{}
			byTopic[topic] = s
		}
		s.total++
		if r.Correct {
			s.correct++
		}
	}

	performance := make(map[string]float64, len(byTopic))
	for topic, s := range byTopic {
		performance[topic] = round2(float64(s.correct) / float64(s.total))
	}
	return performance
}

// CalculateLearningMetrics labels learning speed from the score slope and
// estimates attempts remaining until the average reaches maxScore.
func CalculateLearningMetrics(slope, currentAvg float64, maxScore int) LearningMetrics {
	var speed string
	switch {
	case slope > 0.2:
		speed = "Fast"
	case slope > 0.05:
		speed = "Steady"
	case slope > -0.05:
		speed = "Plateaued"
	default:
		speed = "Struggling"
	}

	var mastery string
	if slope <= 0.01 {
		mastery = "Indefinite (slope too low)"
	} else {
		remaining := float64(maxScore) - currentAvg
		if remaining <= 0 {
			mastery = "Mastered"
		} else {
			mastery = fmt.Sprintf("~%d more attempts", int(remaining/slope))
		}
	}

	return LearningMetrics{LearningSpeed: speed, TimeToMastery: mastery}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
