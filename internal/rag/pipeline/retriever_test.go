package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"studymate/internal/rag/embedding"
	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/schema"
	"studymate/pkg/logger"
)

// failingEmbedder errors after serving a number of successful calls.
type failingEmbedder struct {
	inner     interfaces.EmbeddingModel
	failAfter int
	calls     int
}

func (f *failingEmbedder) Name() string { return f.inner.Name() }

func (f *failingEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.calls > f.failAfter {
		return nil, errors.New("embedding service unavailable")
	}
	return f.inner.EmbedBatch(ctx, texts)
}

func newTestRetriever() *Retriever {
	return NewRetriever(embedding.NewLocalModel(64), logger.New("test"))
}

func studyChunks() []schema.Chunk {
	texts := []string{
		"The mitochondria is the powerhouse of the cell, producing ATP through respiration.",
		"Photosynthesis converts light energy into glucose inside the chloroplast.",
		"The French Revolution began in 1789 with the storming of the Bastille.",
		"Supply and demand determine market prices in a competitive economy.",
	}
	chunks := make([]schema.Chunk, len(texts))
	for i, text := range texts {
		chunks[i] = schema.Chunk{Filename: "course.pdf", ChunkIndex: i, Text: text}
	}
	return chunks
}

func TestQueryFindsRelevantChunk(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	results, err := r.Query(context.Background(), "What is the powerhouse of the cell?", 2)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if !strings.Contains(results[0].Chunk.Text, "mitochondria") {
		t.Errorf("top result should mention mitochondria: %q", results[0].Chunk.Text)
	}
	for i, result := range results {
		if result.Rank != i+1 {
			t.Errorf("result %d rank = %d", i, result.Rank)
		}
		if i > 0 && result.SimilarityScore < results[i-1].SimilarityScore {
			t.Error("distances are not non-decreasing")
		}
	}
}

func TestQueryBlankText(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	results, err := r.Query(context.Background(), "   ", 3)
	if err != nil || results != nil {
		t.Errorf("blank query: got (%v, %v), want (nil, nil)", results, err)
	}
}

func TestQueryEmptyRetriever(t *testing.T) {
	r := newTestRetriever()
	results, err := r.Query(context.Background(), "anything", 3)
	if err != nil || results != nil {
		t.Errorf("empty retriever: got (%v, %v), want (nil, nil)", results, err)
	}
}

func TestQueryClampsTopK(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	results, err := r.Query(context.Background(), "energy", 100)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 4 {
		t.Errorf("oversized topK: got %d results, want 4", len(results))
	}

	results, err = r.Query(context.Background(), "energy", 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("topK=0: got %d results, want 1", len(results))
	}
}

func TestIngestReplacesDocumentSet(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}

	replacement := []schema.Chunk{{Filename: "new.pdf", ChunkIndex: 0, Text: "entirely new material"}}
	if err := r.Ingest(context.Background(), replacement); err != nil {
		t.Fatalf("second Ingest: %v", err)
	}

	stats := r.Stats()
	if stats.TotalChunks != 1 || stats.IndexSize != 1 {
		t.Errorf("after replacement: %+v", stats)
	}
	results, err := r.Query(context.Background(), "new material", 5)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(results) != 1 || results[0].Chunk.Filename != "new.pdf" {
		t.Errorf("old documents still served: %+v", results)
	}
}

func TestIngestIdempotent(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}

	before, err := r.Query(context.Background(), "What is the powerhouse of the cell?", 3)
	if err != nil {
		t.Fatalf("Query before re-ingest: %v", err)
	}

	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("second Ingest: %v", err)
	}

	// Re-ingesting the same chunk sequence must not duplicate anything.
	stats := r.Stats()
	if stats.TotalChunks != 4 || stats.IndexSize != 4 {
		t.Errorf("after identical re-ingest: %+v", stats)
	}

	after, err := r.Query(context.Background(), "What is the powerhouse of the cell?", 3)
	if err != nil {
		t.Fatalf("Query after re-ingest: %v", err)
	}
	if !reflect.DeepEqual(before, after) {
		t.Errorf("re-ingest changed results:\nbefore: %+v\nafter:  %+v", before, after)
	}
}

func TestQueryDeterministic(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	first, err := r.Query(context.Background(), "energy in the cell", 4)
	if err != nil {
		t.Fatalf("first Query: %v", err)
	}
	second, err := r.Query(context.Background(), "energy in the cell", 4)
	if err != nil {
		t.Fatalf("second Query: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical queries returned different results:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestIngestEmptyResets(t *testing.T) {
	r := newTestRetriever()
	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	if err := r.Ingest(context.Background(), nil); err != nil {
		t.Fatalf("Ingest(nil): %v", err)
	}

	stats := r.Stats()
	if stats.TotalChunks != 0 || stats.IndexBuilt {
		t.Errorf("after reset: %+v", stats)
	}
	results, err := r.Query(context.Background(), "mitochondria", 3)
	if err != nil || results != nil {
		t.Errorf("after reset: got (%v, %v), want (nil, nil)", results, err)
	}
}

func TestFailedIngestKeepsServing(t *testing.T) {
	embedder := &failingEmbedder{inner: embedding.NewLocalModel(64), failAfter: 1}
	r := NewRetriever(embedder, logger.New("test"))

	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("first Ingest: %v", err)
	}
	err := r.Ingest(context.Background(), []schema.Chunk{{Filename: "next.pdf", Text: "stuff"}})
	if err == nil {
		t.Fatal("expected the second ingest to fail")
	}

	// The original set keeps answering.
	stats := r.Stats()
	if stats.TotalChunks != 4 {
		t.Errorf("serving set was disturbed: %+v", stats)
	}
}

func TestQueryEmbeddingFailureIsAnError(t *testing.T) {
	embedder := &failingEmbedder{inner: embedding.NewLocalModel(64), failAfter: 1}
	r := NewRetriever(embedder, logger.New("test"))

	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	_, err := r.Query(context.Background(), "mitochondria", 2)
	if err == nil {
		t.Fatal("a failed query embedding must surface as an error, not empty results")
	}
}

func TestStats(t *testing.T) {
	r := newTestRetriever()

	stats := r.Stats()
	if stats.ModelName != "hashed-bow-64" || stats.IndexBuilt || stats.TotalChunks != 0 {
		t.Errorf("empty stats: %+v", stats)
	}

	if err := r.Ingest(context.Background(), studyChunks()); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
	stats = r.Stats()
	if !stats.IndexBuilt || stats.TotalChunks != 4 || stats.IndexSize != 4 || stats.EmbeddingDimension != 64 {
		t.Errorf("populated stats: %+v", stats)
	}
}
