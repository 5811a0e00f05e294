// ABOUTME: Chunk and Segment types for the ingestion and retrieval pipeline
// ABOUTME: Segments are topic-labeled spans of a document; chunks are the indexed unit
package models

// ChunkMetadata carries provenance for an indexed chunk
type ChunkMetadata struct {
	Topic  string `json:"topic"`
	Source string `json:"source"`
}

// Chunk is a bounded-size fragment of a segment's text plus metadata.
// Chunks are immutable once created and live in the vector index.
type Chunk struct {
	ChunkID  string        `json:"chunk_id"`
	Text     string        `json:"text"`
	Metadata ChunkMetadata `json:"metadata"`
}

// Segment is a contiguous span of a document's text assigned a single topic label.
// Segments from one document partition the original text without overlap.
type Segment struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

// ScoredChunk pairs a retrieved chunk with its similarity score
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
