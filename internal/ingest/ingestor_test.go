// ABOUTME: Tests for ingestion orchestration and the topic fallback chain
// ABOUTME: Uses fake extractors and a recording logger for isolation
package ingest

import (
	"strings"
	"testing"
)

// fakeExtractor serves canned text per path
type fakeExtractor struct {
	texts map[string]string
}

func (f *fakeExtractor) Extract(path string) string {
	return f.texts[path]
}

// recordingLogger captures ingestion log calls
type recordingLogger struct {
	filenames []string
	statuses  []string
	err       error
}

func (r *recordingLogger) LogIngestion(filename string, sizeBytes int64, status string) error {
	r.filenames = append(r.filenames, filename)
	r.statuses = append(r.statuses, status)
	return r.err
}

func newTestIngestor(texts map[string]string, logger IngestionLogger) *Ingestor {
	return NewIngestor(&fakeExtractor{texts: texts}, NewSegmenter(), NewChunker(800), logger)
}

func TestIngest_SegmentedDocument(t *testing.T) {
	text := "Chapter 1: Cells\nCells are the basic unit.\nChapter 2: Atoms\nAtoms make up matter."
	ing := newTestIngestor(map[string]string{"bio.txt": text}, nil)

	chunks := ing.Ingest([]string{"bio.txt"})
	if len(chunks) != 2 {
		t.Fatalf("Ingest() returned %d chunks, want 2", len(chunks))
	}

	topics := map[string]bool{}
	for _, ch := range chunks {
		topics[ch.Metadata.Topic] = true
		if ch.Metadata.Source != "bio.txt" {
			t.Errorf("chunk source = %q, want bio.txt", ch.Metadata.Source)
		}
		if ch.Metadata.Topic == "" {
			t.Error("chunk has empty topic")
		}
	}
	if !topics["Chapter 1: Cells"] || !topics["Chapter 2: Atoms"] {
		t.Errorf("topics = %v, want both chapter labels", topics)
	}
}

func TestIngest_FilenameFallbackForFlatText(t *testing.T) {
	ing := newTestIngestor(map[string]string{
		"notes/lecture7.txt": "Plain prose with no recognizable structure at all.",
	}, nil)

	chunks := ing.Ingest([]string{"notes/lecture7.txt"})
	if len(chunks) != 1 {
		t.Fatalf("Ingest() returned %d chunks, want 1", len(chunks))
	}
	if chunks[0].Metadata.Topic != "lecture7.txt" {
		t.Errorf("topic = %q, want filename fallback lecture7.txt", chunks[0].Metadata.Topic)
	}
}

func TestIngest_SkipsEmptyExtraction(t *testing.T) {
	logger := &recordingLogger{}
	ing := newTestIngestor(map[string]string{
		"blank.txt": "",
		"good.txt":  "Atoms make up all ordinary matter in the universe.",
	}, logger)

	chunks := ing.Ingest([]string{"blank.txt", "good.txt"})
	if len(chunks) != 1 {
		t.Fatalf("Ingest() returned %d chunks, want 1", len(chunks))
	}
	if len(logger.filenames) != 1 || logger.filenames[0] != "good.txt" {
		t.Errorf("logged files = %v, want only good.txt", logger.filenames)
	}
}

func TestIngest_MediaGenericNameBucket(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantTopic string
	}{
		{name: "screenshot goes to shared bucket", path: "Screenshot_2024.png", wantTopic: MediaBucketTopic},
		{name: "whatsapp capture goes to shared bucket", path: "WhatsApp Image 3.jpeg", wantTopic: MediaBucketTopic},
		{name: "untitled video goes to shared bucket", path: "untitled.mp4", wantTopic: MediaBucketTopic},
		{name: "meaningful media name kept", path: "krebs_cycle_diagram.png", wantTopic: "krebs_cycle_diagram.png"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := newTestIngestor(map[string]string{
				tt.path: "OCR text without any structure worth segmenting.",
			}, nil)

			chunks := ing.Ingest([]string{tt.path})
			if len(chunks) != 1 {
				t.Fatalf("Ingest() returned %d chunks, want 1", len(chunks))
			}
			if chunks[0].Metadata.Topic != tt.wantTopic {
				t.Errorf("topic = %q, want %q", chunks[0].Metadata.Topic, tt.wantTopic)
			}
		})
	}
}

func TestIngest_MediaWithStructureKeepsSegments(t *testing.T) {
	text := "Chapter 1: Cells\n" + strings.Repeat("Cell walls protect plant cells from rupture. ", 8) +
		"\nChapter 2: Atoms\n" + strings.Repeat("Atomic nuclei hold protons and neutrons together. ", 8)
	ing := newTestIngestor(map[string]string{"slides_recording.mp4": text}, nil)

	chunks := ing.Ingest([]string{"slides_recording.mp4"})
	if len(chunks) < 2 {
		t.Fatalf("Ingest() returned %d chunks, want >= 2 from segmentation", len(chunks))
	}
	for _, ch := range chunks {
		if ch.Metadata.Topic == MediaBucketTopic {
			t.Errorf("structured media should keep segment topics, got %q", ch.Metadata.Topic)
		}
	}
}

func TestIngest_AggregatesAcrossFiles(t *testing.T) {
	logger := &recordingLogger{}
	ing := newTestIngestor(map[string]string{
		"a.txt": "Cells are small units of living organisms everywhere.",
		"b.txt": "Stars fuse hydrogen into helium under enormous pressure.",
	}, logger)

	chunks := ing.Ingest([]string{"a.txt", "b.txt"})
	if len(chunks) != 2 {
		t.Fatalf("Ingest() returned %d chunks, want 2", len(chunks))
	}
	if chunks[0].Metadata.Source != "a.txt" || chunks[1].Metadata.Source != "b.txt" {
		t.Errorf("sources = %q, %q; want a.txt then b.txt", chunks[0].Metadata.Source, chunks[1].Metadata.Source)
	}
	if len(logger.filenames) != 2 {
		t.Errorf("logged %d files, want 2", len(logger.filenames))
	}
}

func TestIngest_NilLoggerIsFine(t *testing.T) {
	ing := newTestIngestor(map[string]string{
		"a.txt": "Energy can be neither created nor destroyed in a closed system.",
	}, nil)

	chunks := ing.Ingest([]string{"a.txt"})
	if len(chunks) != 1 {
		t.Fatalf("Ingest() returned %d chunks, want 1", len(chunks))
	}
}
