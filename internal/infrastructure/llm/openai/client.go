// Package openai provides an LLMClient implementation using OpenAI.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/ersonp/fable-core/internal/domain/ports"
	"github.com/ersonp/fable-core/internal/infrastructure/config"
)

// Client implements the LLMClient interface using OpenAI.
type Client struct {
	client      *openai.Client
	model       string
	temperature float32
}

// NewClient creates a new OpenAI LLM client.
func NewClient(cfg config.LLMConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	client := openai.NewClient(cfg.APIKey)

	model := "gpt-4o-mini"
	if cfg.Model != "" {
		model = cfg.Model
	}

	temperature := float32(0.8)
	if cfg.Temperature > 0 {
		temperature = cfg.Temperature
	}

	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
	}, nil
}

// Invoke sends a single-shot prompt and returns the raw response text.
func (c *Client) Invoke(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	})
}

// InvokeWithHistory sends a prompt preceded by prior conversation turns.
func (c *Client) InvokeWithHistory(ctx context.Context, turns []ports.Turn, prompt string) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	for _, t := range turns {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(t.Role),
			Content: t.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: prompt,
	})
	return c.complete(ctx, messages)
}

func (c *Client) complete(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("calling OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// toOpenAIRole maps a domain turn role onto the OpenAI message role.
// Unknown roles fall back to user.
func toOpenAIRole(role string) string {
	switch role {
	case ports.RoleSystem:
		return openai.ChatMessageRoleSystem
	case ports.RoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
