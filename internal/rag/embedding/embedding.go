package embedding

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"studymate/internal/config"
	"studymate/internal/rag/interfaces"
)

// ModelLoadError reports that an embedding model could not be constructed.
// The retriever cannot operate without an embedder, so this is fatal for the
// caller: it must not proceed with ingestion.
type ModelLoadError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load embedding model %s/%s: %v", e.Provider, e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// NewModel creates the embedding model named by the configuration. The
// provider is selected explicitly; there is no runtime fallback between
// providers.
func NewModel(cfg config.EmbeddingConfig) (interfaces.EmbeddingModel, error) {
	switch cfg.Provider {
	case "local":
		return NewLocalModel(cfg.Dimension), nil
	case "ollama":
		model, err := NewOllamaModel(cfg.Model, cfg.BaseURL, cfg.BatchSize)
		if err != nil {
			return nil, &ModelLoadError{Provider: cfg.Provider, Model: cfg.Model, Err: err}
		}
		return model, nil
	case "openai":
		apiKey, err := resolveAPIKey(cfg.APIKeyEnv, "OPENAI_API_KEY")
		if err != nil {
			return nil, &ModelLoadError{Provider: cfg.Provider, Model: cfg.Model, Err: err}
		}
		return NewOpenAIModel(cfg.Model, apiKey, cfg.BatchSize), nil
	case "gemini":
		apiKey, err := resolveAPIKey(cfg.APIKeyEnv, "GEMINI_API_KEY")
		if err != nil {
			return nil, &ModelLoadError{Provider: cfg.Provider, Model: cfg.Model, Err: err}
		}
		model, err := NewGeminiModel(cfg.Model, apiKey)
		if err != nil {
			return nil, &ModelLoadError{Provider: cfg.Provider, Model: cfg.Model, Err: err}
		}
		return model, nil
	case "huggingface":
		apiKey, err := resolveAPIKey(cfg.APIKeyEnv, "HUGGINGFACE_API_KEY")
		if err != nil {
			return nil, &ModelLoadError{Provider: cfg.Provider, Model: cfg.Model, Err: err}
		}
		return NewHuggingFaceModel(cfg.Model, apiKey, cfg.BaseURL, cfg.BatchSize), nil
	default:
		return nil, &ModelLoadError{
			Provider: cfg.Provider,
			Model:    cfg.Model,
			Err:      fmt.Errorf("unsupported provider: %s", cfg.Provider),
		}
	}
}

func resolveAPIKey(envVar, fallbackVar string) (string, error) {
	if envVar == "" {
		envVar = fallbackVar
	}
	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", envVar)
	}
	return key, nil
}

// embedInBatches sends texts to a remote provider in fixed-size sub-batches,
// issued concurrently with row order preserved, so one call can cover the
// full chunk set of an ingestion without per-text overhead.
func embedInBatches(ctx context.Context, batchSize int, texts []string,
	embed func(ctx context.Context, batch []string) ([][]float32, error)) ([][]float32, error) {

	if len(texts) == 0 {
		return nil, nil
	}
	if batchSize <= 0 {
		batchSize = 32
	}

	vectors := make([][]float32, len(texts))
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		start, end := start, end

		eg.Go(func() error {
			batch, err := embed(gCtx, texts[start:end])
			if err != nil {
				return err
			}
			if len(batch) != end-start {
				return fmt.Errorf("provider returned %d embeddings for %d texts", len(batch), end-start)
			}
			copy(vectors[start:end], batch)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}
