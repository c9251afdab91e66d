package pipeline

import (
	"context"
	"fmt"
	"strings"

	"studymate/internal/rag/interfaces"
	"studymate/internal/rag/schema"
	"studymate/pkg/logger"
)

// QAPipeline turns a question and its retrieved context into an answer via
// the configured generation provider. The core never talks to a vendor
// directly; everything goes through the one-method LLM interface.
type QAPipeline struct {
	llm interfaces.LLM
	log *logger.Logger
}

// NewQAPipeline creates a QAPipeline over the given LLM.
func NewQAPipeline(llm interfaces.LLM, log *logger.Logger) *QAPipeline {
	return &QAPipeline{llm: llm, log: log}
}

// Run builds a prompt from the question and retrieval results and asks the
// LLM for an answer.
func (p *QAPipeline) Run(ctx context.Context, question string, results []schema.RetrievalResult) (string, error) {
	p.log.Info(fmt.Sprintf("Building prompt for question with %d context chunks", len(results)))
	prompt := BuildPrompt(question, results)

	answer, err := p.llm.Generate(ctx, prompt)
	if err != nil {
		p.log.Error(fmt.Sprintf("LLM failed to generate answer: %v", err))
		return "", fmt.Errorf("generating answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

// BuildPrompt renders the QA prompt: the formatted context blocks followed
// by the question.
func BuildPrompt(question string, results []schema.RetrievalResult) string {
	var sb strings.Builder
	sb.WriteString("Based on the following context, please answer the question accurately and concisely.\n\nContext:\n")
	sb.WriteString(FormatContext(results))
	sb.WriteString("\nQuestion: ")
	sb.WriteString(question)
	sb.WriteString("\n\nAnswer:")
	return sb.String()
}
