// ABOUTME: Centralized configuration for the studybuddy pipeline
// ABOUTME: Loads an optional YAML file, then environment variables, with validation and defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the study pipeline
type Config struct {
	// OpenAI settings
	OpenAIKey      string        `yaml:"-"`
	ChatModel      string        `yaml:"chat_model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	Timeout        time.Duration `yaml:"-"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryDelay     time.Duration `yaml:"-"`

	// Retrieval settings
	TopK            int `yaml:"top_k"`
	VectorDimension int `yaml:"vector_dimension"`

	// Ingestion settings
	MaxChunkChars int `yaml:"max_chunk_chars"`

	// Generation settings
	ContextCharBudget int `yaml:"context_char_budget"`

	// Quiz settings
	QuizQuestions     int `yaml:"quiz_questions"`
	MinQuizChunkChars int `yaml:"min_quiz_chunk_chars"`
}

// Load reads configuration from an optional config file path and the
// environment. Environment variables win over file values; a missing file
// is not an error.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}
	applyEnv(cfg)

	return cfg, cfg.Validate()
}

// LoadEnv reads configuration from environment variables only
func LoadEnv() (*Config, error) {
	return Load("")
}

func defaults() *Config {
	return &Config{
		ChatModel:         "gpt-4o-mini",
		EmbeddingModel:    "text-embedding-3-small",
		Timeout:           30 * time.Second,
		MaxRetries:        3,
		RetryDelay:        2 * time.Second,
		TopK:              4,
		VectorDimension:   1536,
		MaxChunkChars:     800,
		ContextCharBudget: 1000,
		QuizQuestions:     5,
		MinQuizChunkChars: 50,
	}
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIKey)
	cfg.ChatModel = getEnv("STUDYBUDDY_CHAT_MODEL", cfg.ChatModel)
	cfg.EmbeddingModel = getEnv("STUDYBUDDY_EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.Timeout = getEnvDuration("OPENAI_TIMEOUT", cfg.Timeout)
	cfg.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", cfg.RetryDelay)
	cfg.TopK = getEnvInt("STUDYBUDDY_TOP_K", cfg.TopK)
	cfg.VectorDimension = getEnvInt("STUDYBUDDY_VECTOR_DIMENSION", cfg.VectorDimension)
	cfg.MaxChunkChars = getEnvInt("STUDYBUDDY_MAX_CHUNK_CHARS", cfg.MaxChunkChars)
	cfg.ContextCharBudget = getEnvInt("STUDYBUDDY_CONTEXT_BUDGET", cfg.ContextCharBudget)
	cfg.QuizQuestions = getEnvInt("STUDYBUDDY_QUIZ_QUESTIONS", cfg.QuizQuestions)
	cfg.MinQuizChunkChars = getEnvInt("STUDYBUDDY_MIN_QUIZ_CHUNK", cfg.MinQuizChunkChars)
}

func (c *Config) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("STUDYBUDDY_TOP_K must be >= 1, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.MaxChunkChars < 100 {
		return fmt.Errorf("STUDYBUDDY_MAX_CHUNK_CHARS must be >= 100, got %d", c.MaxChunkChars)
	}
	if c.QuizQuestions < 1 {
		return fmt.Errorf("STUDYBUDDY_QUIZ_QUESTIONS must be >= 1, got %d", c.QuizQuestions)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
