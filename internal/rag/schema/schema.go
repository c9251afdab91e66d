package schema

// File processing status values reported per input file.
const (
	StatusSuccess = "success"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// NamedFile is one uploaded document: a human-readable name and its raw bytes.
type NamedFile struct {
	Name string
	Data []byte
}

// Chunk is the atomic retrievable unit: a bounded window of one document's
// cleaned text. (Filename, ChunkIndex) uniquely identifies a chunk within an
// ingestion batch. Chunks are immutable once created.
type Chunk struct {
	// Filename is the source document identifier.
	Filename string `json:"filename"`

	// ChunkIndex is the 0-based position of this chunk within its
	// document's chunk sequence.
	ChunkIndex int `json:"chunk_index"`

	// Text is the non-empty cleaned chunk text.
	Text string `json:"text"`

	// FileIndex is the index of the source document in the ingestion batch.
	FileIndex int `json:"file_index"`

	// OriginalTextLength is the length of the full cleaned document text
	// the chunk was carved from. Diagnostic only.
	OriginalTextLength int `json:"original_text_length"`
}

// RetrievalResult is a chunk annotated with its distance to the query and
// its 1-based rank in the returned order. Constructed fresh per query.
type RetrievalResult struct {
	Chunk Chunk `json:"chunk"`

	// SimilarityScore is the raw squared L2 distance; lower is more similar.
	SimilarityScore float64 `json:"similarity_score"`

	// Rank is the 1-based position in ascending-distance order.
	Rank int `json:"rank"`
}

// Neighbor is one row of a vector index search result.
type Neighbor struct {
	// Row is the index row id, aligned with the ingestion chunk order.
	Row int

	// Distance is the squared L2 distance to the query vector.
	Distance float64
}

// FileStatus reports the outcome of processing one input file. Every file in
// a batch gets exactly one entry; a bad file never aborts its siblings.
type FileStatus struct {
	Filename   string `json:"filename"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	TextLength int    `json:"text_length,omitempty"`
}

// Source is citation information extracted from a retrieval result.
type Source struct {
	Filename string `json:"filename"`
	Section  string `json:"section"`
	Preview  string `json:"preview"`
}

// RetrieverStats is a read-only view of the retriever's current state.
type RetrieverStats struct {
	ModelName          string `json:"model_name"`
	TotalChunks        int    `json:"total_chunks"`
	IndexBuilt         bool   `json:"index_built"`
	EmbeddingDimension int    `json:"embedding_dimension"`
	IndexSize          int    `json:"index_size"`
}

// ProcessingStats summarizes a processed chunk set.
type ProcessingStats struct {
	TotalChunks     int            `json:"total_chunks"`
	TotalFiles      int            `json:"total_files"`
	AvgChunkLength  float64        `json:"avg_chunk_length"`
	TotalCharacters int            `json:"total_characters"`
	FileBreakdown   map[string]int `json:"file_breakdown,omitempty"`
}
