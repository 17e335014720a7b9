package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Fixed request budgets. Analysis uses a low temperature for consistent
// structured output; chat replies are capped tighter to stay conversational.
const (
	analysisMaxTokens   = 4000
	analysisTemperature = 0.1
	chatMaxTokens       = 1000
)

// Config holds remote model client parameters.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

type client struct {
	openai openai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates an OpenAI-compatible Client from the given configuration.
func NewClient(cfg Config, logger *slog.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("analyzer API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &client{
		openai: openai.NewClient(opts...),
		model:  model,
		logger: logger.With("system", "analysis"),
	}, nil
}

func (c *client) Generate(ctx context.Context, system, user string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(analysisMaxTokens),
		Temperature: openai.Float(analysisTemperature),
	}

	return c.complete(ctx, params)
}

func (c *client) Converse(ctx context.Context, system string, turns []Turn) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns)+1)
	messages = append(messages, openai.SystemMessage(system))

	for _, turn := range turns {
		switch turn.Role {
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:     c.model,
		Messages:  messages,
		MaxTokens: openai.Int(chatMaxTokens),
	}

	return c.complete(ctx, params)
}

func (c *client) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	start := time.Now()
	resp, err := c.openai.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrClientFailure, err)
	}

	c.logger.Debug(
		"model call completed",
		"model", c.model,
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
	)

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrClientFailure)
	}

	return resp.Choices[0].Message.Content, nil
}
