package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/loaders"
	"studymate/internal/rag/schema"
	"studymate/pkg/logger"
)

// Processor turns raw uploaded files into the chunk records the retriever
// ingests. Every input file gets exactly one status entry; a corrupt file
// never aborts processing of its siblings.
type Processor struct {
	loader   interfaces.Loader
	splitter interfaces.Splitter
	log      *logger.Logger
}

// NewProcessor creates a Processor over the given loader and splitter.
func NewProcessor(loader interfaces.Loader, splitter interfaces.Splitter, log *logger.Logger) *Processor {
	return &Processor{loader: loader, splitter: splitter, log: log}
}

// ProcessDocuments extracts, cleans and chunks each file in the batch.
// Non-PDF files are skipped, empty or unreadable files fail with a specific
// reason, and the whole batch always yields one status per input file.
func (p *Processor) ProcessDocuments(ctx context.Context, files []schema.NamedFile) ([]schema.Chunk, []schema.FileStatus) {
	var allChunks []schema.Chunk
	statuses := make([]schema.FileStatus, 0, len(files))

	for fileIdx, file := range files {
		p.log.Info(fmt.Sprintf("Processing file %d/%d: %s", fileIdx+1, len(files), file.Name))

		if !strings.HasSuffix(strings.ToLower(file.Name), ".pdf") {
			p.log.Warn(fmt.Sprintf("Skipping non-PDF file: %s", file.Name))
			statuses = append(statuses, schema.FileStatus{
				Filename: file.Name,
				Status:   schema.StatusSkipped,
				Reason:   "Not a PDF file",
			})
			continue
		}

		if len(file.Data) == 0 {
			p.log.Warn(fmt.Sprintf("Empty file: %s", file.Name))
			statuses = append(statuses, schema.FileStatus{
				Filename: file.Name,
				Status:   schema.StatusFailed,
				Reason:   "Empty file",
			})
			continue
		}

		text, err := p.loader.Load(ctx, file.Name, file.Data)
		if err != nil {
			reason := "Could not extract text"
			var unreadable *loaders.DocumentUnreadableError
			if errors.As(err, &unreadable) {
				reason = "Corrupted or unreadable PDF file"
			}
			p.log.Error(fmt.Sprintf("Failed to extract text from %s: %v", file.Name, err))
			statuses = append(statuses, schema.FileStatus{
				Filename: file.Name,
				Status:   schema.StatusFailed,
				Reason:   reason,
			})
			continue
		}

		if strings.TrimSpace(text) == "" || text == loaders.NoTextSentinel {
			statuses = append(statuses, schema.FileStatus{
				Filename: file.Name,
				Status:   schema.StatusFailed,
				Reason:   "No text content found",
			})
			continue
		}

		chunks := p.splitter.Split(text)
		if len(chunks) == 0 {
			statuses = append(statuses, schema.FileStatus{
				Filename: file.Name,
				Status:   schema.StatusFailed,
				Reason:   "Could not create text chunks",
			})
			continue
		}

		for chunkIdx, chunkText := range chunks {
			allChunks = append(allChunks, schema.Chunk{
				Filename:           file.Name,
				ChunkIndex:         chunkIdx,
				Text:               chunkText,
				FileIndex:          fileIdx,
				OriginalTextLength: len(text),
			})
		}
		statuses = append(statuses, schema.FileStatus{
			Filename:   file.Name,
			Status:     schema.StatusSuccess,
			ChunkCount: len(chunks),
			TextLength: len(text),
		})
		p.log.Info(fmt.Sprintf("Successfully processed %s: %d chunks created", file.Name, len(chunks)))
	}

	succeeded := 0
	for _, s := range statuses {
		if s.Status == schema.StatusSuccess {
			succeeded++
		}
	}
	p.log.Info(fmt.Sprintf("Processing summary: %d/%d files succeeded, %d chunks total",
		succeeded, len(files), len(allChunks)))

	return allChunks, statuses
}

// ProcessingStats summarizes a processed chunk set for diagnostics.
func ProcessingStats(chunks []schema.Chunk) schema.ProcessingStats {
	stats := schema.ProcessingStats{TotalChunks: len(chunks)}
	if len(chunks) == 0 {
		return stats
	}

	breakdown := make(map[string]int)
	for _, chunk := range chunks {
		breakdown[chunk.Filename]++
		stats.TotalCharacters += len(chunk.Text)
	}
	stats.FileBreakdown = breakdown
	stats.TotalFiles = len(breakdown)
	stats.AvgChunkLength = float64(stats.TotalCharacters) / float64(stats.TotalChunks)
	return stats
}
