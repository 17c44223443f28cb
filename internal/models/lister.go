package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/codetranslator/internal/provider"
)

// chatPrefixes identify models that accept chat completions
var chatPrefixes = []string{"gpt-", "chatgpt-", "o1", "o3", "o4"}

// excluded marks chat-prefixed models that cannot complete text
var excluded = []string{"tts", "audio", "realtime", "transcribe", "image", "search", "embedding"}

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. An empty baseURL uses the public API.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// ChatModels returns the sorted IDs of models usable for translation
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .codetranslator.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chatModels []string
	for _, model := range models.Models {
		if IsChatModel(model.ID) {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)

	return chatModels, nil
}

// ListAvailableModels prints the chat models to w, marking the default
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	chatModels, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Chat models available for translation:")
	if len(chatModels) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}

	for _, model := range chatModels {
		if model == provider.DefaultOpenAIModel {
			fmt.Fprintf(w, "  %s (default)\n", model)
		} else {
			fmt.Fprintf(w, "  %s\n", model)
		}
	}

	return nil
}

// IsChatModel reports whether id names a text chat completion model
func IsChatModel(id string) bool {
	chat := false
	for _, prefix := range chatPrefixes {
		if strings.HasPrefix(id, prefix) {
			chat = true
			break
		}
	}
	if !chat {
		return false
	}

	for _, word := range excluded {
		if strings.Contains(id, word) {
			return false
		}
	}
	return true
}
