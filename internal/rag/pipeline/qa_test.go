package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studymate/internal/rag/schema"
	"studymate/pkg/logger"
)

// stubLLM records the prompt it was asked to complete.
type stubLLM struct {
	answer string
	err    error
	prompt string
}

func (s *stubLLM) Generate(ctx context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, s.err
}

func TestQAPipelineRun(t *testing.T) {
	llm := &stubLLM{answer: "  Cells divide by mitosis.  \n"}
	qa := NewQAPipeline(llm, logger.New("test"))

	answer, err := qa.Run(context.Background(), "How do cells divide?", sampleResults())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer != "Cells divide by mitosis." {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(llm.prompt, "Question: How do cells divide?") {
		t.Error("question missing from the generated prompt")
	}
	if !strings.Contains(llm.prompt, "[Source: bio.pdf, Section 1]") {
		t.Error("retrieved context missing from the generated prompt")
	}
}

func TestQAPipelineError(t *testing.T) {
	cause := errors.New("rate limited")
	qa := NewQAPipeline(&stubLLM{err: cause}, logger.New("test"))

	_, err := qa.Run(context.Background(), "anything", nil)
	if !errors.Is(err, cause) {
		t.Fatalf("got %v, want the provider error", err)
	}
}

func TestQAPipelineNoContext(t *testing.T) {
	llm := &stubLLM{answer: "I don't have enough information."}
	qa := NewQAPipeline(llm, logger.New("test"))

	if _, err := qa.Run(context.Background(), "Who?", []schema.RetrievalResult{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(llm.prompt, "Question: Who?") {
		t.Error("question missing from the generated prompt")
	}
}
