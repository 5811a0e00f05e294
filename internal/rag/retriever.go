// ABOUTME: Retriever returns the top-k most relevant chunks for a query
// ABOUTME: Pure orchestration over the embedder and vector index; empty results mean "no evidence", never an error
package rag

import (
	"log"

	"github.com/harper/studybuddy/internal/models"
)

// Embedder converts query text into a vector
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
}

// Index performs similarity search over indexed chunks
type Index interface {
	Search(vector []float64, topK int) []models.ScoredChunk
	Len() int
}

// Retriever ranks indexed chunks against natural-language queries
type Retriever struct {
	embedder Embedder
	index    Index
	topK     int
}

// NewRetriever creates a Retriever. The embedder may be nil when the
// embedding model failed to load; retrieval then degrades to empty results.
func NewRetriever(embedder Embedder, index Index, topK int) *Retriever {
	if topK <= 0 {
		topK = 4
	}
	return &Retriever{
		embedder: embedder,
		index:    index,
		topK:     topK,
	}
}

// Retrieve returns up to top-k chunks ranked by relevance. An empty or
// uninitialized index, a missing embedder, or an embedding failure all
// yield an empty result rather than an error.
func (r *Retriever) Retrieve(query string) []models.Chunk {
	if r.index == nil || r.index.Len() == 0 || r.embedder == nil {
		return []models.Chunk{}
	}

	vector, err := r.embedder.GenerateEmbedding(query)
	if err != nil {
		log.Printf("Warning: query embedding failed, returning no evidence: %v", err)
		return []models.Chunk{}
	}

	scored := r.index.Search(vector, r.topK)
	chunks := make([]models.Chunk, 0, len(scored))
	for _, s := range scored {
		chunks = append(chunks, s.Chunk)
	}
	return chunks
}
