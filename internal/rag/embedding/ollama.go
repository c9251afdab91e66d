package embedding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	ollama "github.com/ollama/ollama/api"
)

// OllamaModel generates embeddings through a local Ollama server, e.g. the
// "all-minilm" sentence-embedding model.
type OllamaModel struct {
	client    *ollama.Client
	model     string
	batchSize int
}

// NewOllamaModel creates an Ollama embedding client. An empty baseURL
// defaults to the standard local address.
func NewOllamaModel(model, baseURL string, batchSize int) (*OllamaModel, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	hc := &http.Client{
		Timeout: 120 * time.Second,
	}
	return &OllamaModel{
		client:    ollama.NewClient(parsedURL, hc),
		model:     model,
		batchSize: batchSize,
	}, nil
}

func (m *OllamaModel) Name() string {
	return m.model
}

// EmbedBatch generates embeddings for a batch of texts, splitting large
// inputs into concurrent sub-batches.
func (m *OllamaModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, m.batchSize, texts, func(ctx context.Context, batch []string) ([][]float32, error) {
		resp, err := m.client.Embed(ctx, &ollama.EmbedRequest{
			Model: m.model,
			Input: batch,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get embeddings from ollama: %w", err)
		}
		if len(resp.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		return resp.Embeddings, nil
	})
}
