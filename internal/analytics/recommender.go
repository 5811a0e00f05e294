// ABOUTME: Bandit-style study path recommender over per-topic performance.
// ABOUTME: Prioritizes weak topics, then unexplored ones, then mastered-topic challenges.

package analytics

import (
	"fmt"
	"math/rand"
	"sort"
	"time"
)

const (
	masteryThreshold = 0.8
	reviewThreshold  = 0.6
)

// Recommendation names the next topic to study and why.
type Recommendation struct {
	Topic  string `json:"topic"`
	Reason string `json:"reason"`
}

// Recommender picks the next study topic from quiz performance.
type Recommender struct {
	rng *rand.Rand
}

func NewRecommender() *Recommender {
	return &Recommender{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// RecommendNext chooses a topic: weak topics first (lowest score wins),
// untested topics next, then a random mastered topic, then any practiced
// topic. With no performance data it falls back to the first known topic.
func (r *Recommender) RecommendNext(performance map[string]float64, allTopics []string) Recommendation {
	if len(performance) == 0 {
		if len(allTopics) > 0 {
			return Recommendation{Topic: allTopics[0], Reason: "Start your journey here."}
		}
		return Recommendation{Topic: "General", Reason: "Add study material to get started."}
	}

	practiced := make([]string, 0, len(performance))
	for topic := range performance {
		practiced = append(practiced, topic)
	}
	sort.Strings(practiced)

	weakest := ""
	for _, topic := range practiced {
		if performance[topic] >= reviewThreshold {
			continue
		}
		if weakest == "" || performance[topic] < performance[weakest] {
			weakest = topic
		}
	}
	if weakest != "" {
		return Recommendation{
			Topic:  weakest,
			Reason: fmt.Sprintf("Your score in %q is low (%d%%). Time to review it.", weakest, int(performance[weakest]*100)),
		}
	}

	var untested []string
	for _, topic := range allTopics {
		if _, ok := performance[topic]; !ok {
			untested = append(untested, topic)
		}
	}
	if len(untested) > 0 {
		return Recommendation{
			Topic:  untested[0],
			Reason: fmt.Sprintf("You've mastered your current topics. Time to explore %q.", untested[0]),
		}
	}

	var mastered []string
	for _, topic := range practiced {
		if performance[topic] >= masteryThreshold {
			mastered = append(mastered, topic)
		}
	}
	if len(mastered) > 0 {
		target := mastered[r.rng.Intn(len(mastered))]
		return Recommendation{
			Topic:  target,
			Reason: fmt.Sprintf("You're doing great in %q. Keep it up.", target),
		}
	}

	target := practiced[r.rng.Intn(len(practiced))]
	return Recommendation{Topic: target, Reason: "Keep practicing to reach mastery."}
}
