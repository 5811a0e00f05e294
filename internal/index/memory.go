// ABOUTME: In-memory vector index with cosine similarity search
// ABOUTME: Process-wide singleton per session; safe for concurrent readers, writers serialized by callers
package index

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/harper/studybuddy/internal/models"
)

// Memory is a brute-force in-memory vector index over chunks
type Memory struct {
	mu      sync.RWMutex
	vectors [][]float64
	chunks  []models.Chunk
}

// NewMemory creates an empty index
func NewMemory() *Memory {
	return &Memory{}
}

// Add appends vectors and their chunks to the index
func (m *Memory) Add(vectors [][]float64, chunks []models.Chunk) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("vectors and chunks length mismatch: %d vs %d", len(vectors), len(chunks))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors = append(m.vectors, vectors...)
	m.chunks = append(m.chunks, chunks...)
	return nil
}

// Search returns up to topK chunks ranked by cosine similarity to the
// query vector. An empty index yields an empty result, never nil.
func (m *Memory) Search(vector []float64, topK int) []models.ScoredChunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if topK <= 0 {
		topK = 5
	}

	results := make([]models.ScoredChunk, 0, len(m.chunks))
	for i := range m.vectors {
		results = append(results, models.ScoredChunk{
			Chunk: m.chunks[i],
			Score: cosineSimilarity(vector, m.vectors[i]),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// Len reports how many chunks are indexed
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// Topics returns the sorted set of distinct topic labels in the index
func (m *Memory) Topics() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var topics []string
	for _, ch := range m.chunks {
		if ch.Metadata.Topic == "" || seen[ch.Metadata.Topic] {
			continue
		}
		seen[ch.Metadata.Topic] = true
		topics = append(topics, ch.Metadata.Topic)
	}
	sort.Strings(topics)
	return topics
}

// ChunksByTopic returns all chunks tagged with the topic; an empty topic
// returns every indexed chunk
func (m *Memory) ChunksByTopic(topic string) []models.Chunk {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Chunk, 0, len(m.chunks))
	for _, ch := range m.chunks {
		if topic == "" || ch.Metadata.Topic == topic {
			out = append(out, ch)
		}
	}
	return out
}

// Reset drops all indexed data
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vectors = nil
	m.chunks = nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
