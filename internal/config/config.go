package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppInfo holds basic information about the running application.
type AppInfo struct {
	Name        string `yaml:"name"`        // application name
	Version     string `yaml:"version"`     // application version
	Environment string `yaml:"environment"` // e.g. "development", "production"
}

// LoggerConfig controls the structured logger.
type LoggerConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// EmbeddingConfig selects and configures the embedding model provider.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"`  // "local", "ollama", "openai", "gemini", "huggingface"
	Model     string `yaml:"model"`     // model name, e.g. "all-minilm"
	APIKeyEnv string `yaml:"apiKeyEnv"` // environment variable holding the API key
	BaseURL   string `yaml:"baseURL"`   // override service URL (ollama, huggingface)
	BatchSize int    `yaml:"batchSize"` // texts per request for remote providers
	Dimension int    `yaml:"dimension"` // vector dimension for the local provider
}

// LLMConfig selects and configures the answer-generation provider.
// An empty provider disables answer generation; retrieval still works.
type LLMConfig struct {
	Provider  string `yaml:"provider"`  // "gemini", "openai", "ollama" or ""
	Model     string `yaml:"model"`     // model name
	APIKeyEnv string `yaml:"apiKeyEnv"` // environment variable holding the API key
	BaseURL   string `yaml:"baseURL"`   // override service URL (ollama)
}

// ChunkingConfig controls how document text is split into word windows.
type ChunkingConfig struct {
	Size    int `yaml:"size"`    // target words per chunk
	Overlap int `yaml:"overlap"` // words shared between adjacent chunks
}

// RetrievalConfig controls query-time behaviour.
type RetrievalConfig struct {
	TopK int `yaml:"topK"` // default number of chunks returned per query
}

// ServerConfig configures the HTTP application layer.
type ServerConfig struct {
	Address string `yaml:"address"` // listen address, e.g. ":8080"
}

// AppConfig is the root structure of the YAML configuration file.
type AppConfig struct {
	App       AppInfo         `yaml:"app"`
	Logger    LoggerConfig    `yaml:"logger"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	LLM       LLMConfig       `yaml:"llm"`
	Chunking  ChunkingConfig  `yaml:"chunking"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Server    ServerConfig    `yaml:"server"`
}

// LoadConfig reads and parses the YAML configuration at path, falling back
// to defaults for any section that is left unset.
func LoadConfig(path string) (*AppConfig, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file '%s': %w", path, err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(yamlFile, &cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file '%s': %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// Default returns the configuration used when no file is present: local
// hashed embeddings, no LLM, the chunking defaults the product shipped with.
func Default() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.App.Name == "" {
		cfg.App.Name = "studymate"
	}
	if cfg.Logger.Level == "" {
		cfg.Logger.Level = "info"
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "local"
	}
	if cfg.Embedding.BatchSize <= 0 {
		cfg.Embedding.BatchSize = 32
	}
	if cfg.Embedding.Dimension <= 0 {
		cfg.Embedding.Dimension = 256
	}
	if cfg.Chunking.Size <= 0 {
		cfg.Chunking.Size = 500
	}
	if cfg.Chunking.Overlap <= 0 {
		cfg.Chunking.Overlap = 100
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 3
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
}
