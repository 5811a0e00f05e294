// ABOUTME: RAGAS-style metrics for faithfulness, context recall, and topic coverage
// ABOUTME: Deterministic evaluation against per-scenario ground truth

package ragas

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes evaluation scores for benchmark tests
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness computes faithfulness score (0.0-1.0)
// Faithfulness = Does the answer match the ground truth? No hallucinations?
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	responseUpper := strings.ToUpper(response)

	missingItems := []string{}
	for _, expected := range expectedInResponse {
		if !strings.Contains(responseUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInResponse {
		if strings.Contains(responseUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	if len(missingItems) == 0 && len(forbiddenFound) == 0 {
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	}

	if len(missingItems) > 0 && len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	}

	if len(missingItems) > 0 {
		return 0.5, fmt.Sprintf(
			"Partial faithfulness - missing expected items: %v",
			missingItems,
		)
	}

	return 0.5, fmt.Sprintf(
		"Partial faithfulness - forbidden items found: %v",
		forbiddenFound,
	)
}

// CalculateContextRecall computes context recall score (0.0-1.0)
// Context Recall = Did retrieval surface the chunks the answer needs?
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedContext []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No context retrieval required"
	}

	allContext := strings.ToUpper(strings.Join(retrievedContext, " "))

	foundCount := 0
	missingItems := []string{}
	for _, expectedItem := range expectedContextItems {
		if strings.Contains(allContext, strings.ToUpper(expectedItem)) {
			foundCount++
		} else {
			missingItems = append(missingItems, expectedItem)
		}
	}

	recall := float64(foundCount) / float64(len(expectedContextItems))
	if recall == 1.0 {
		return 1.0, "Perfect context recall - all expected items retrieved"
	}

	return recall, fmt.Sprintf(
		"Partial context recall (%.2f) - missing items: %v",
		recall, missingItems,
	)
}

// CalculateTopicCoverage computes the fraction of expected topics the
// segmenter detected (0.0-1.0).
func (m *MetricsCalculator) CalculateTopicCoverage(
	detectedTopics []string,
	expectedTopics []string,
) (float64, string) {
	if len(expectedTopics) == 0 {
		return 1.0, "No topic expectations"
	}

	detected := make(map[string]bool, len(detectedTopics))
	for _, t := range detectedTopics {
		detected[t] = true
	}

	foundCount := 0
	missingTopics := []string{}
	for _, expected := range expectedTopics {
		if detected[expected] {
			foundCount++
		} else {
			missingTopics = append(missingTopics, expected)
		}
	}

	coverage := float64(foundCount) / float64(len(expectedTopics))
	if coverage == 1.0 {
		return 1.0, "All expected topics detected"
	}

	return coverage, fmt.Sprintf(
		"Partial topic coverage (%.2f) - missing topics: %v",
		coverage, missingTopics,
	)
}

// EvaluateTest runs the full evaluation for a scenario
func (m *MetricsCalculator) EvaluateTest(
	scenario TestScenario,
	finalResponse string,
	retrievedContext []string,
	detectedTopics []string,
) TestResult {
	faithfulness, faithfulnessDetail := m.CalculateFaithfulness(
		finalResponse,
		scenario.GroundTruth.ExpectedInResponse,
		scenario.GroundTruth.ForbiddenInResponse,
	)

	recall, recallDetail := m.CalculateContextRecall(
		retrievedContext,
		scenario.GroundTruth.ExpectedContextItems,
	)

	coverage, coverageDetail := m.CalculateTopicCoverage(
		detectedTopics,
		scenario.GroundTruth.ExpectedTopics,
	)

	overallScore := (faithfulness + recall + coverage) / 3.0

	status := "FAIL"
	if faithfulness >= 0.9 && recall >= 0.9 && coverage >= 0.9 {
		status = "PASS"
	}

	return TestResult{
		TestID:             scenario.ID,
		TestName:           scenario.Name,
		FaithfulnessScore:  faithfulness,
		ContextRecallScore: recall,
		TopicCoverageScore: coverage,
		OverallScore:       overallScore,
		Status:             status,
		Details: map[string]interface{}{
			"faithfulness_detail": faithfulnessDetail,
			"recall_detail":       recallDetail,
			"coverage_detail":     coverageDetail,
			"final_response":      finalResponse[:min(200, len(finalResponse))],
			"context_items":       len(retrievedContext),
		},
	}
}
