package provider

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/snonux/codetranslator/internal/translation"
)

// ErrNotConfigured is returned for every request when the provider has no credential
var ErrNotConfigured = errors.New("provider API key not configured")

// Provider defines the interface for streaming completion providers
type Provider interface {
	// Stream sends prompt upstream and returns the streamed completion.
	// Errors detected before the first fragment are returned here.
	Stream(ctx context.Context, prompt string) (translation.Stream, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured
	IsAvailable() error
}

// Config holds configuration shared by all providers. It is read-only
// once passed to NewProvider.
type Config struct {
	Provider    string // "openai" or "gemini"
	Model       string // empty selects the provider default
	Temperature float32
	MaxTokens   int

	// OpenAI-specific settings
	OpenAIKey     string
	OpenAIBaseURL string // empty uses the public API

	// Gemini-specific settings
	GeminiKey     string
	GeminiBaseURL string // empty uses the public API
}

// DefaultProviderConfig returns default configuration
func DefaultProviderConfig() *Config {
	return &Config{
		Provider:    "openai",
		Temperature: 0,
		MaxTokens:   0,
	}
}

// NewProvider creates the provider named in config. A missing credential
// does not fail here: the returned provider rejects every Stream call
// with ErrNotConfigured so a misconfigured server still starts.
func NewProvider(config *Config) (Provider, error) {
	if config == nil {
		config = DefaultProviderConfig()
	}

	switch config.Provider {
	case "", "openai":
		if config.OpenAIKey == "" {
			return &unconfigured{name: "openai"}, nil
		}
		return NewOpenAIProvider(config)

	case "gemini":
		if config.GeminiKey == "" {
			return &unconfigured{name: "gemini"}, nil
		}
		return NewGeminiProvider(context.Background(), config)

	default:
		return nil, fmt.Errorf("unknown provider: %s", config.Provider)
	}
}

// unconfigured stands in for a provider whose credential is missing
type unconfigured struct {
	name string
}

func (u *unconfigured) Stream(ctx context.Context, prompt string) (translation.Stream, error) {
	return nil, fmt.Errorf("%s: %w", u.name, ErrNotConfigured)
}

func (u *unconfigured) Name() string {
	return u.name
}

func (u *unconfigured) IsAvailable() error {
	return fmt.Errorf("%s: %w", u.name, ErrNotConfigured)
}
