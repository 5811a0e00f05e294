// ABOUTME: Tests for query-time retrieval orchestration
// ABOUTME: Verifies degraded empty-result behavior and top-k delegation
package rag

import (
	"errors"
	"testing"

	"github.com/harper/studybuddy/internal/models"
)

type fakeEmbedder struct {
	vector []float64
	err    error
}

func (f *fakeEmbedder) GenerateEmbedding(text string) ([]float64, error) {
	return f.vector, f.err
}

type fakeIndex struct {
	results  []models.ScoredChunk
	lastTopK int
}

func (f *fakeIndex) Search(vector []float64, topK int) []models.ScoredChunk {
	f.lastTopK = topK
	return f.results
}

func (f *fakeIndex) Len() int { return len(f.results) }

func TestRetrieve_ReturnsRankedChunks(t *testing.T) {
	idx := &fakeIndex{results: []models.ScoredChunk{
		{Chunk: models.Chunk{ChunkID: "a", Text: "first"}, Score: 0.9},
		{Chunk: models.Chunk{ChunkID: "b", Text: "second"}, Score: 0.5},
	}}
	r := NewRetriever(&fakeEmbedder{vector: []float64{1, 0}}, idx, 4)

	got := r.Retrieve("what are cells")
	if len(got) != 2 {
		t.Fatalf("Retrieve() returned %d chunks, want 2", len(got))
	}
	if got[0].ChunkID != "a" || got[1].ChunkID != "b" {
		t.Errorf("order = %s, %s; want a, b", got[0].ChunkID, got[1].ChunkID)
	}
	if idx.lastTopK != 4 {
		t.Errorf("index queried with topK = %d, want 4", idx.lastTopK)
	}
}

func TestRetrieve_EmptyIndex(t *testing.T) {
	r := NewRetriever(&fakeEmbedder{vector: []float64{1}}, &fakeIndex{}, 4)

	got := r.Retrieve("anything")
	if got == nil {
		t.Fatal("Retrieve() = nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Retrieve() returned %d chunks, want 0", len(got))
	}
}

func TestRetrieve_NilEmbedderDegrades(t *testing.T) {
	idx := &fakeIndex{results: []models.ScoredChunk{{Chunk: models.Chunk{ChunkID: "a"}}}}
	r := NewRetriever(nil, idx, 4)

	if got := r.Retrieve("anything"); len(got) != 0 {
		t.Errorf("Retrieve() returned %d chunks with nil embedder, want 0", len(got))
	}
}

func TestRetrieve_EmbeddingFailureDegrades(t *testing.T) {
	idx := &fakeIndex{results: []models.ScoredChunk{{Chunk: models.Chunk{ChunkID: "a"}}}}
	r := NewRetriever(&fakeEmbedder{err: errors.New("api down")}, idx, 4)

	got := r.Retrieve("anything")
	if got == nil || len(got) != 0 {
		t.Errorf("Retrieve() = %v, want empty slice on embedding failure", got)
	}
}
