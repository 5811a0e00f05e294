// ABOUTME: Benchmark scenario data for RAGAS-style pipeline evaluation
// ABOUTME: Defines study documents, questions, and ground truth for each test

package ragas

// TestScenario represents a complete pipeline benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Documents   []Document
	Question    string
	GroundTruth GroundTruth
}

// Document is one study material file fed into the pipeline
type Document struct {
	Name    string
	Content string
}

// GroundTruth defines expected outcomes for evaluation
type GroundTruth struct {
	ExpectedInResponse  []string // Strings that MUST appear in the answer
	ForbiddenInResponse []string // Strings that MUST NOT appear in the answer

	// Context retrieval expectations
	ExpectedContextItems []string // Text that should appear in retrieved chunks
	ExpectedTopics       []string // Topics segmentation should detect
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID             string
	TestName           string
	FaithfulnessScore  float64
	ContextRecallScore float64
	TopicCoverageScore float64
	OverallScore       float64
	Status             string // "PASS" or "FAIL"
	Details            map[string]interface{}
	ErrorMessage       string
}

// GetChapterTest exercises heading-based segmentation plus retrieval
func GetChapterTest() TestScenario {
	return TestScenario{
		ID:          "chapter_retrieval",
		Name:        "Chapter Segmentation and Retrieval",
		Description: "Splits a two-chapter document and answers from the right chapter",
		Documents: []Document{
			{
				Name: "biology.txt",
				Content: "Chapter 1: Cells\n" +
					"The cell is the basic unit of life. Mitochondria produce the cell's energy through respiration.\n" +
					"Chapter 2: Atoms\n" +
					"Atoms are composed of protons, neutrons, and electrons bound by electromagnetic forces.",
			},
		},
		Question: "What is the basic unit of life?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:   []string{"cell"},
			ExpectedContextItems: []string{"basic unit of life"},
			ExpectedTopics:       []string{"Chapter 1: Cells", "Chapter 2: Atoms"},
		},
	}
}

// GetTOCTest exercises table-of-contents anchored segmentation
func GetTOCTest() TestScenario {
	return TestScenario{
		ID:          "toc_segmentation",
		Name:        "TOC-Anchored Segmentation",
		Description: "Harvests section headers from a table of contents and splits on them",
		Documents: []Document{
			{
				Name: "physics.txt",
				Content: "Table of Contents\n" +
					"1. Motion\n" +
					"2. Energy\n" +
					"Motion\n" +
					"An object in motion stays in motion unless acted on by an outside force, as Newton described.\n" +
					"Energy\n" +
					"Energy cannot be created or destroyed, only transformed between kinetic and potential forms.",
			},
		},
		Question: "What happens to an object in motion?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:   []string{"motion"},
			ExpectedContextItems: []string{"stays in motion"},
			ExpectedTopics:       []string{"Motion", "Energy"},
		},
	}
}

// GetCrossDocTest exercises retrieval across multiple source files
func GetCrossDocTest() TestScenario {
	return TestScenario{
		ID:          "cross_document",
		Name:        "Cross-Document Retrieval",
		Description: "Retrieves the answer from the right file when several are indexed",
		Documents: []Document{
			{
				Name: "history.txt",
				Content: "The printing press was invented by Johannes Gutenberg around 1440, " +
					"transforming how information spread across Europe.",
			},
			{
				Name: "chemistry.txt",
				Content: "Water is a polar molecule made of two hydrogen atoms covalently " +
					"bonded to one oxygen atom, which gives it unusual solvent properties.",
			},
		},
		Question: "Who invented the printing press?",
		GroundTruth: GroundTruth{
			ExpectedInResponse:   []string{"Gutenberg"},
			ForbiddenInResponse:  []string{"oxygen"},
			ExpectedContextItems: []string{"Gutenberg"},
			ExpectedTopics:       []string{"history.txt", "chemistry.txt"},
		},
	}
}

// GetAllTests returns every benchmark scenario
func GetAllTests() []TestScenario {
	return []TestScenario{
		GetChapterTest(),
		GetTOCTest(),
		GetCrossDocTest(),
	}
}
