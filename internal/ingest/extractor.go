// ABOUTME: TextExtractor boundary for turning files into plain text
// ABOUTME: Implementations never error; unsupported or corrupt input yields an empty string
package ingest

import (
	"os"
	"path/filepath"
	"strings"
)

// TextExtractor turns a file into extracted plain text. An empty string
// means the file could not be read or carries no text (for example an
// unreadable scan); it is never an error.
type TextExtractor interface {
	Extract(path string) string
}

// PlainTextExtractor reads plain-text study material (.txt, .md).
// Richer formats (PDF, DOCX, OCR, transcripts) come from external
// extractor implementations satisfying the same interface.
type PlainTextExtractor struct{}

// NewPlainTextExtractor creates a new PlainTextExtractor
func NewPlainTextExtractor() *PlainTextExtractor {
	return &PlainTextExtractor{}
}

// Extract returns the file contents for supported extensions, "" otherwise
func (e *PlainTextExtractor) Extract(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
	default:
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}
