package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"deckforge/config"
)

// Sampling parameters for assistant replies. Short, focused guidance
// rather than long-form generation.
const (
	replyTemperature = float32(0.6)
	replyMaxTokens   = 320
)

// NewChatModel builds the eino chat model for the configured provider.
// Returns nil without error when no API key is set: callers treat a
// nil model as "mock replies only".
func NewChatModel(ctx context.Context, cfg config.Config) (model.ChatModel, error) {
	if cfg.APIKey == "" || cfg.UseMockAssistant {
		return nil, nil
	}

	temperature := replyTemperature
	maxTokens := replyMaxTokens

	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       modelName,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model: %w", err)
	}
	return chatModel, nil
}
