package splitters

import (
	"strings"

	"studymate/internal/rag/interfaces"
)

// Defaults preserved from the original product contract.
const (
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
)

// WordSplitter slides a fixed-size word window across document text,
// advancing by size minus overlap each step so adjacent chunks share context.
type WordSplitter struct {
	ChunkSize    int
	ChunkOverlap int
}

// NewWordSplitter creates a WordSplitter, substituting defaults for
// non-positive size or negative overlap.
func NewWordSplitter(chunkSize, chunkOverlap int) *WordSplitter {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if chunkOverlap < 0 {
		chunkOverlap = DefaultChunkOverlap
	}
	return &WordSplitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

// Split splits text into overlapping word-window chunks. Text at or under
// the window size becomes a single chunk; empty text yields no chunks.
// Splitting is stateless: the same text always produces the same chunks.
func (s *WordSplitter) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= s.ChunkSize {
		return []string{strings.Join(words, " ")}
	}

	var chunks []string
	start := 0
	for start < len(words) {
		end := start + s.ChunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))

		if end >= len(words) {
			break
		}

		next := end - s.ChunkOverlap
		if next <= start {
			// Overlap at or above the window size would stall the
			// scan; advance by the full window instead.
			next = end
		}
		start = next
	}
	return chunks
}

var _ interfaces.Splitter = (*WordSplitter)(nil)
