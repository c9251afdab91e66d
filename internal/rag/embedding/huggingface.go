package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/"

// HuggingFaceModel generates embeddings through the Hugging Face Inference
// API feature-extraction pipeline. This serves sentence-transformers models
// such as all-MiniLM-L6-v2 directly.
type HuggingFaceModel struct {
	client    *http.Client
	model     string
	apiKey    string
	baseURL   string
	batchSize int
}

// NewHuggingFaceModel creates a Hugging Face Inference API client. An empty
// baseURL defaults to the public feature-extraction endpoint.
func NewHuggingFaceModel(model, apiKey, baseURL string, batchSize int) *HuggingFaceModel {
	if baseURL == "" {
		baseURL = defaultHuggingFaceURL
	}
	return &HuggingFaceModel{
		client:    &http.Client{},
		model:     model,
		apiKey:    apiKey,
		baseURL:   baseURL,
		batchSize: batchSize,
	}
}

func (m *HuggingFaceModel) Name() string {
	return m.model
}

// EmbedBatch generates embeddings for a batch of texts, splitting large
// inputs into concurrent sub-batches.
func (m *HuggingFaceModel) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, m.batchSize, texts, m.embedBatch)
}

func (m *HuggingFaceModel) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	payload := map[string]interface{}{
		"inputs":  texts,
		"options": map[string]bool{"wait_for_model": true},
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+m.model, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("inference API returned %d: %s", resp.StatusCode, body)
	}

	var embeddings [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&embeddings); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}
	return embeddings, nil
}
