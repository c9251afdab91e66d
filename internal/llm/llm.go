package llm

import (
	"fmt"
	"os"

	"studymate/internal/config"
	"studymate/internal/rag/interfaces"
)

// NewClient creates the generation provider named by the configuration.
// An empty provider returns nil with no error: answer generation is
// optional and retrieval works without it.
func NewClient(cfg config.LLMConfig) (interfaces.LLM, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "gemini":
		apiKey, err := resolveAPIKey(cfg.APIKeyEnv, "GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewGemini(cfg.Model, apiKey)
	case "openai":
		apiKey, err := resolveAPIKey(cfg.APIKeyEnv, "OPENAI_API_KEY")
		if err != nil {
			return nil, err
		}
		return NewOpenAI(cfg.Model, apiKey), nil
	case "ollama":
		return NewOllama(cfg.Model, cfg.BaseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
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
