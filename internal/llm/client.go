package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"finance-rag/internal/config"
)

// CompletionClient is the external model-completion collaborator. Calls are
// attempt-once; retries are the caller's responsibility.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}

// Client calls an OpenAI-compatible chat completion endpoint with the model,
// token and temperature settings passed through from configuration.
type Client struct {
	llm *openai.LLM
	cfg *config.LLMConfig
}

func NewClient(cfg *config.LLMConfig) (*Client, error) {
	llm, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(strings.TrimPrefix(cfg.Key, "Bearer ")),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return &Client{llm: llm, cfg: cfg}, nil
}

func (c *Client) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextContent{Text: systemPrompt}},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextContent{Text: userContent}},
		},
	}

	res, err := c.llm.GenerateContent(ctx, messages,
		llms.WithMaxTokens(c.cfg.MaxTokens),
		llms.WithTemperature(c.cfg.Temperature),
	)
	if err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}
	return res.Choices[0].Content, nil
}
