// Package advisor generates personalized financial guidance with an LLM.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a personal finance advisor. Give specific, " +
	"actionable advice in plain language. Keep answers under 200 words."

// Client wraps the OpenAI chat completion API behind a single Advise call.
type Client struct {
	api   *openai.Client
	model string
}

func New(apiKey, model string) *Client {
	return &Client{
		api:   openai.NewClient(apiKey),
		model: model,
	}
}

// Advise sends a prompt and returns the model's reply.
func (c *Client) Advise(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   400,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
