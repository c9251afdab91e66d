package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIModel generates embeddings through the OpenAI embeddings API.
type OpenAIModel struct {
	client    *openai.Client
	model     string
	batchSize int
}

// NewOpenAIModel creates an OpenAI embedding client.
func NewOpenAIModel(model, apiKey string, batchSize int) *OpenAIModel {
	return &OpenAIModel{
		client:    openai.NewClient(apiKey),
		model:     model,
		batchSize: batchSize,
	}
}

func (m *OpenAIModel) Name() string {
	return m.model
}

// EmbedBatch generates embeddings for a batch of texts, splitting large
// inputs into concurrent sub-batches.
func (m *OpenAIModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, m.batchSize, texts, func(ctx context.Context, batch []string) ([][]float32, error) {
		resp, err := m.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(m.model),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create embeddings: %w", err)
		}
		if len(resp.Data) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}

		embeddings := make([][]float32, len(resp.Data))
		for i, d := range resp.Data {
			embeddings[i] = d.Embedding
		}
		return embeddings, nil
	})
}
