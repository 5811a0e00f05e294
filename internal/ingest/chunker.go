// ABOUTME: Chunker splits segment content into bounded-size pieces for indexing
// ABOUTME: Prefers paragraph boundaries, then sentences, then hard word splits
package ingest

import (
	"strings"

	"github.com/google/uuid"

	"github.com/harper/studybuddy/internal/models"
)

// Chunker splits segment content into chunks no larger than maxChars
type Chunker struct {
	maxChars int
}

// NewChunker creates a Chunker with the given maximum chunk size
func NewChunker(maxChars int) *Chunker {
	if maxChars <= 0 {
		maxChars = 800
	}
	return &Chunker{maxChars: maxChars}
}

// Chunk splits content into bounded-size chunks stamped with the source
// identifier. The topic label is stamped later by the ingestor.
func (c *Chunker) Chunk(source, content string) []models.Chunk {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}

	var chunks []models.Chunk
	for _, piece := range c.splitBounded(content) {
		chunks = append(chunks, models.Chunk{
			ChunkID: generateChunkID(),
			Text:    piece,
			Metadata: models.ChunkMetadata{
				Source: source,
			},
		})
	}
	return chunks
}

// splitBounded packs paragraphs into pieces of at most maxChars,
// descending to sentence and word splits for oversized units
func (c *Chunker) splitBounded(content string) []string {
	var pieces []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			pieces = append(pieces, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, para := range splitParagraphs(content) {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > c.maxChars {
			flush()
			pieces = append(pieces, c.splitOversized(para)...)
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > c.maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return pieces
}

// splitOversized breaks a paragraph larger than maxChars at sentence
// boundaries, falling back to word boundaries for giant sentences
func (c *Chunker) splitOversized(para string) []string {
	var pieces []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			pieces = append(pieces, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, sent := range splitSentences(para) {
		if len(sent) > c.maxChars {
			flush()
			pieces = append(pieces, splitWords(sent, c.maxChars)...)
			continue
		}
		if current.Len() > 0 && current.Len()+len(sent)+1 > c.maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
	}
	flush()

	return pieces
}

// splitParagraphs splits text by double newlines
func splitParagraphs(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n\n")
}

// splitSentences splits text by ". " (period + space)
func splitSentences(text string) []string {
	sentences := strings.Split(text, ". ")

	var result []string
	for i, sent := range sentences {
		sent = strings.TrimSpace(sent)
		if sent == "" {
			continue
		}
		if i < len(sentences)-1 && !strings.HasSuffix(sent, ".") {
			sent = sent + "."
		}
		result = append(result, sent)
	}
	return result
}

// splitWords hard-splits a run of words into pieces of at most maxChars
func splitWords(text string, maxChars int) []string {
	var pieces []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+len(word)+1 > maxChars {
			pieces = append(pieces, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		pieces = append(pieces, current.String())
	}
	return pieces
}

// generateChunkID generates a unique chunk ID
func generateChunkID() string {
	return "chunk_" + uuid.New().String()
}
