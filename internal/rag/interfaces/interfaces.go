package interfaces

import (
	"context"

	"studymate/internal/rag/schema"
)

// Loader extracts the cleaned text of one document from its raw bytes.
// A document with no extractable text yields a fixed sentinel message rather
// than an empty string, so callers can tell "nothing found" from a parse
// failure.
type Loader interface {
	Load(ctx context.Context, name string, data []byte) (string, error)
}

// Splitter splits cleaned document text into an ordered sequence of
// non-empty chunk strings. Splitting is stateless and deterministic.
type Splitter interface {
	Split(text string) []string
}

// EmbeddingModel maps texts to fixed-dimension dense vectors. The model is
// loaded once at construction and is read-only afterwards, so a single
// instance is safe for concurrent use. An empty input yields an empty
// output, not an error. Embeddings are deterministic for a fixed model.
type EmbeddingModel interface {
	Name() string
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex supports exact k-nearest-neighbor search over a fixed set of
// vectors by squared L2 distance. Build replaces the whole vector set, row
// order preserved; there is no incremental update. Search against an unbuilt
// or empty index returns no neighbors, never an error.
type VectorIndex interface {
	Build(vectors [][]float32) error
	Search(query []float32, k int) []schema.Neighbor
	Size() int
	Dimension() int
}

// LLM generates an answer for a fully rendered prompt. Providers are
// selected explicitly by configuration, one implementation per vendor.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
