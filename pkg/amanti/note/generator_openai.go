package note

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultModel   = "gemini-2.5-flash-lite"
	DefaultBaseUrl = "https://generativelanguage.googleapis.com/v1beta/openai"
)

type OpenAiGenerator struct {
	model  string
	client *openai.Client
}

var _ Generator = (*OpenAiGenerator)(nil)

func NewOpenAiGenerator(apiKey string, model string, baseUrl string) *OpenAiGenerator {
	config := openai.DefaultConfig(apiKey)
	if baseUrl != "" {
		config.BaseURL = baseUrl
	}
	if model == "" {
		model = DefaultModel
	}

	return &OpenAiGenerator{
		model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

func (g *OpenAiGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAiGenerator) Model() string {
	return g.model
}
