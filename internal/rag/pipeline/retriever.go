package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/schema"
	"studymate/internal/rag/vectorstore"
	"studymate/pkg/logger"
)

// snapshot is one fully built document set: chunks positionally aligned with
// the index rows. Snapshots are immutable; replacing documents means
// building a new snapshot and swapping the pointer.
type snapshot struct {
	id     string
	chunks []schema.Chunk
	index  *vectorstore.FlatIndex
}

// Retriever is the single entry point tying ingestion and querying together.
// It owns the embeddings and index for the current document set, batch-embeds
// at ingest time, and answers queries with ranked chunks.
//
// Ingest holds a single-writer lock and builds the replacement snapshot
// before swapping it in, so a failed re-ingest never corrupts the currently
// serving one and queries never observe chunks misaligned with index rows.
type Retriever struct {
	embedder interfaces.EmbeddingModel
	log      *logger.Logger

	ingestMu sync.Mutex   // serializes Ingest calls
	snapMu   sync.RWMutex // guards the snapshot pointer
	snap     *snapshot
}

// NewRetriever creates a Retriever over the given embedding model. The
// retriever starts empty; queries return no results until an ingest
// succeeds.
func NewRetriever(embedder interfaces.EmbeddingModel, log *logger.Logger) *Retriever {
	return &Retriever{embedder: embedder, log: log}
}

// Ingest embeds all chunk texts in one batched call, builds a fresh vector
// index over them, and atomically replaces the serving document set. An
// empty input resets the retriever to its empty state with a warning; that
// is the normal "no documents yet" condition, not an error. On failure the
// previously serving set keeps answering queries unchanged.
func (r *Retriever) Ingest(ctx context.Context, chunks []schema.Chunk) error {
	r.ingestMu.Lock()
	defer r.ingestMu.Unlock()

	if len(chunks) == 0 {
		r.log.Warn("No chunks provided for ingest; retriever is now empty")
		r.swap(nil)
		return nil
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	r.log.Info(fmt.Sprintf("Creating embeddings for %d chunks with model %s", len(texts), r.embedder.Name()))
	vectors, err := r.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(chunks))
	}

	index := vectorstore.NewFlatIndex()
	if err := index.Build(vectors); err != nil {
		return fmt.Errorf("building vector index: %w", err)
	}

	snap := &snapshot{
		id:     uuid.NewString(),
		chunks: append([]schema.Chunk(nil), chunks...),
		index:  index,
	}
	r.swap(snap)

	r.log.WithPayload(map[string]interface{}{
		"snapshot_id": snap.id,
		"chunks":      len(snap.chunks),
		"dimension":   index.Dimension(),
	}).Info("Document set indexed")
	return nil
}

// Query embeds the query text and returns the topK nearest chunks, ranked by
// ascending distance. A blank query or an empty retriever yields an empty
// result without calling the embedder; "no relevant content" is a normal
// outcome, never an error.
func (r *Retriever) Query(ctx context.Context, text string, topK int) ([]schema.RetrievalResult, error) {
	if strings.TrimSpace(text) == "" {
		r.log.Warn("Empty query provided")
		return nil, nil
	}

	snap := r.snapshot()
	if snap == nil || len(snap.chunks) == 0 {
		r.log.Warn("No index or chunks available for retrieval")
		return nil, nil
	}

	if topK < 1 {
		topK = 1
	}
	if topK > len(snap.chunks) {
		topK = len(snap.chunks)
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("embedder returned no vector for query")
	}

	neighbors := snap.index.Search(vectors[0], topK)
	results := make([]schema.RetrievalResult, 0, len(neighbors))
	for i, neighbor := range neighbors {
		results = append(results, schema.RetrievalResult{
			Chunk:           snap.chunks[neighbor.Row],
			SimilarityScore: neighbor.Distance,
			Rank:            i + 1,
		})
	}

	r.log.Info(fmt.Sprintf("Retrieved %d relevant chunks for query", len(results)))
	return results, nil
}

// Stats reports the retriever's current state. Read-only, no side effects.
func (r *Retriever) Stats() schema.RetrieverStats {
	stats := schema.RetrieverStats{ModelName: r.embedder.Name()}

	snap := r.snapshot()
	if snap == nil {
		return stats
	}
	stats.TotalChunks = len(snap.chunks)
	stats.IndexBuilt = true
	stats.EmbeddingDimension = snap.index.Dimension()
	stats.IndexSize = snap.index.Size()
	return stats
}

func (r *Retriever) snapshot() *snapshot {
	r.snapMu.RLock()
	defer r.snapMu.RUnlock()
	return r.snap
}

func (r *Retriever) swap(snap *snapshot) {
	r.snapMu.Lock()
	r.snap = snap
	r.snapMu.Unlock()
}
