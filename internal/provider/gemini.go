package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"google.golang.org/genai"

	"codeberg.org/snonux/codetranslator/internal/translation"
)

// DefaultGeminiModel is used when no model is configured
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider implements Provider using the Gemini streaming API
type GeminiProvider struct {
	client *genai.Client
	config *Config
	model  string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config *Config) (*GeminiProvider, error) {
	if config.GeminiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      config.GeminiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: config.GeminiBaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	return &GeminiProvider{
		client: client,
		config: config,
		model:  model,
	}, nil
}

// Stream opens a streamed generation for prompt. The first response is
// pulled before returning so upstream failures surface as an error here
// rather than in the middle of the stream.
func (p *GeminiProvider) Stream(ctx context.Context, prompt string) (translation.Stream, error) {
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(translation.SystemPrompt, genai.RoleUser),
		Temperature:       genai.Ptr(p.config.Temperature),
	}
	if p.config.MaxTokens > 0 {
		genConfig.MaxOutputTokens = maxOutputTokens(p.config.MaxTokens)
	}

	seq := p.client.Models.GenerateContentStream(ctx, p.model, genai.Text(prompt), genConfig)
	next, stop := iter.Pull2(seq)

	s := &geminiStream{next: next, stop: stop}
	first, err := s.pull()
	if err != nil && !errors.Is(err, io.EOF) {
		stop()
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}
	s.pending, s.pendingErr = first, err

	return s, nil
}

// maxOutputTokens clamps n to the range the API field can carry
func maxOutputTokens(n int) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Model returns the model requests are sent to
func (p *GeminiProvider) Model() string {
	return p.model
}

// IsAvailable checks if the Gemini API is configured
func (p *GeminiProvider) IsAvailable() error {
	if p.config.GeminiKey == "" {
		return fmt.Errorf("gemini: %w", ErrNotConfigured)
	}
	return nil
}

type geminiStream struct {
	next func() (*genai.GenerateContentResponse, error, bool)
	stop func()

	primed     bool
	pending    string
	pendingErr error
}

// pull returns the next non-empty text fragment
func (s *geminiStream) pull() (string, error) {
	for {
		resp, err, ok := s.next()
		if !ok {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if text := resp.Text(); text != "" {
			return text, nil
		}
	}
}

func (s *geminiStream) Next() (string, error) {
	if !s.primed {
		s.primed = true
		return s.pending, s.pendingErr
	}

	text, err := s.pull()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("Gemini stream error: %w", err)
	}
	return text, err
}

func (s *geminiStream) Close() error {
	s.stop()
	return nil
}
