package pipeline

import (
	"fmt"
	"strings"

	"studymate/internal/rag/schema"
)

const previewLength = 200

// FormatContext renders ranked retrieval results as the context block handed
// to the LLM: one section per result labeled with its rank, in input order,
// joined by blank lines. The rendering is deterministic so prompts are
// reproducible.
func FormatContext(results []schema.RetrievalResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, result := range results {
		parts = append(parts, fmt.Sprintf("Context %d:\n[Source: %s, Section %d]\n%s\n",
			result.Rank, result.Chunk.Filename, result.Chunk.ChunkIndex+1, result.Chunk.Text))
	}
	return strings.Join(parts, "\n")
}

// Sources extracts citation information from retrieval results for display:
// filename, section label, and a preview of at most 200 characters.
func Sources(results []schema.RetrievalResult) []schema.Source {
	sources := make([]schema.Source, 0, len(results))
	for _, result := range results {
		preview := result.Chunk.Text
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength]) + "..."
		}
		sources = append(sources, schema.Source{
			Filename: result.Chunk.Filename,
			Section:  fmt.Sprintf("Section %d", result.Chunk.ChunkIndex+1),
			Preview:  preview,
		})
	}
	return sources
}
