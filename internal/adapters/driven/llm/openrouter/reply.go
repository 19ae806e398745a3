// Package openrouter provides a reply service adapter using the
// OpenRouter chat completions API.
package openrouter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
)

// Ensure ReplyService implements the interface.
var _ driven.ReplyService = (*ReplyService)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "openai/gpt-4o-mini"
	DefaultTimeout = 60 * time.Second

	// maxReplyTokens caps response length. The system prompt asks for
	// two to three sentences; the cap backstops models that ignore it.
	maxReplyTokens = 300

	replyTemperature = 0.7
)

// Config holds configuration for the OpenRouter reply service.
type Config struct {
	// APIKey is the OpenRouter API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://openrouter.ai/api/v1).
	// OpenRouter speaks the OpenAI wire format, so any compatible
	// endpoint works here.
	BaseURL string

	// Model is the chat model to use (default: openai/gpt-4o-mini).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// ReplyService produces conversation replies via OpenRouter.
type ReplyService struct {
	client *goopenai.Client
	model  string
}

// NewReplyService creates a new OpenRouter reply service.
func NewReplyService(cfg Config) (*ReplyService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &ReplyService{
		client: goopenai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}, nil
}

// Reply implements driven.ReplyService.
func (s *ReplyService) Reply(ctx context.Context, systemPrompt string, turns []domain.ChatTurn) (string, error) {
	messages := make([]goopenai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, turn := range turns {
		role := goopenai.ChatMessageRoleUser
		if turn.Role == domain.RoleAssistant {
			role = goopenai.ChatMessageRoleAssistant
		}
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    role,
			Content: turn.Content,
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    messages,
		MaxTokens:   maxReplyTokens,
		Temperature: replyTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: no response choices returned")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// ModelName returns the name of the chat model being used.
func (s *ReplyService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *ReplyService) Close() error {
	return nil
}
