package embedding

import (
	"context"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiModel generates embeddings through the Google GenAI embedding API.
type GeminiModel struct {
	name  string
	model *genai.EmbeddingModel
}

// NewGeminiModel creates a Google GenAI embedding client for the named model.
func NewGeminiModel(modelName, apiKey string) (*GeminiModel, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &GeminiModel{
		name:  modelName,
		model: client.EmbeddingModel(modelName),
	}, nil
}

func (m *GeminiModel) Name() string {
	return m.name
}

// EmbedBatch generates embeddings for a batch of texts using the API's
// native batch endpoint.
func (m *GeminiModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	batch := m.model.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	res, err := m.model.BatchEmbedContents(ctx, batch)
	if err != nil {
		return nil, err
	}

	embeddings := make([][]float32, 0, len(res.Embeddings))
	for _, emb := range res.Embeddings {
		embeddings = append(embeddings, emb.Values)
	}
	return embeddings, nil
}
