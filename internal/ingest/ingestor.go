// ABOUTME: Ingestor drives files from extracted text to topic-tagged chunks
// ABOUTME: Applies the segmentation fallback chain and aggregates chunks across a batch
package ingest

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/studybuddy/internal/models"
)

// IngestionLogger records per-file ingestion events, fire-and-forget
type IngestionLogger interface {
	LogIngestion(filename string, sizeBytes int64, status string) error
}

// mediaExts are extensions whose text arrives via OCR or transcription
var mediaExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".mp4":  true,
	".avi":  true,
}

// genericCaptureNames mark throwaway capture filenames that would otherwise
// produce many near-duplicate per-file topics
var genericCaptureNames = []string{
	"screenshot", "whatsapp", "untitled", "image", "video", "capture",
}

// MediaBucketTopic is the shared topic label for generically-named media files
const MediaBucketTopic = "Uncategorized Media"

// Ingestor orchestrates extraction, segmentation, chunking, and topic
// tagging for a batch of files
type Ingestor struct {
	extractor TextExtractor
	segmenter *Segmenter
	chunker   *Chunker
	logger    IngestionLogger
}

// NewIngestor creates an Ingestor. The logger may be nil; logging is
// best-effort either way.
func NewIngestor(extractor TextExtractor, segmenter *Segmenter, chunker *Chunker, logger IngestionLogger) *Ingestor {
	return &Ingestor{
		extractor: extractor,
		segmenter: segmenter,
		chunker:   chunker,
		logger:    logger,
	}
}

// Ingest turns a batch of files into one flat sequence of topic-tagged
// chunks. Files that yield no text are skipped; a failed file never aborts
// the batch.
func (in *Ingestor) Ingest(paths []string) []models.Chunk {
	var allChunks []models.Chunk

	for _, path := range paths {
		text := in.extractor.Extract(path)
		if text == "" {
			continue
		}

		segments := in.segmentsFor(path, text)

		source := filepath.Base(path)
		for _, seg := range segments {
			chunks := in.chunker.Chunk(source, seg.Content)
			for i := range chunks {
				chunks[i].Metadata.Topic = seg.Topic
			}
			allChunks = append(allChunks, chunks...)
		}

		in.logSuccess(path)
	}

	return allChunks
}

// segmentsFor applies the documented fallback chain: segmentation, then a
// filename-derived topic, with generically-named media files pooled into a
// shared bucket
func (in *Ingestor) segmentsFor(path, text string) []models.Segment {
	segments := in.segmenter.Segment(text)

	if isMedia(path) {
		if len(segments) == 0 || (len(segments) == 1 && segments[0].Topic == "General") {
			return []models.Segment{{Topic: mediaTopic(path), Content: text}}
		}
		return segments
	}

	if len(segments) == 0 {
		return []models.Segment{{Topic: filepath.Base(path), Content: text}}
	}
	return segments
}

func isMedia(path string) bool {
	return mediaExts[strings.ToLower(filepath.Ext(path))]
}

// mediaTopic derives a topic from a media filename, special-casing generic
// capture names into the shared bucket
func mediaTopic(path string) string {
	name := filepath.Base(path)
	lower := strings.ToLower(name)
	for _, generic := range genericCaptureNames {
		if strings.Contains(lower, generic) {
			return MediaBucketTopic
		}
	}
	return name
}

// logSuccess records the ingestion event; failures are swallowed
func (in *Ingestor) logSuccess(path string) {
	if in.logger == nil {
		return
	}
	var size int64
	if info, err := os.Stat(path); err == nil {
		size = info.Size()
	}
	_ = in.logger.LogIngestion(filepath.Base(path), size, "success")
}
