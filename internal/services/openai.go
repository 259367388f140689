package services

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAICompletionClient calls the OpenAI chat completion API.
type OpenAICompletionClient struct {
	client *openai.Client
}

// NewOpenAICompletionClient creates a CompletionClient backed by OpenAI.
func NewOpenAICompletionClient(apiKey string) *OpenAICompletionClient {
	return &OpenAICompletionClient{
		client: openai.NewClient(apiKey),
	}
}

// Complete sends one chat completion request and returns the raw text.
func (c *OpenAICompletionClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: userPrompt,
				},
			},
			Temperature: 0.7,
			MaxTokens:   300,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}
