package note

import (
	"context"
	"errors"
	"strings"
)

// Client converts form input into a prompt and a completion into display
// text. It never retries: one call per user action.
type Client struct {
	generator Generator
	variant   PromptVariant
}

func NewClient(generator Generator, variant PromptVariant) *Client {
	if variant == "" {
		variant = PromptVariantValentine
	}

	return &Client{
		generator: generator,
		variant:   variant,
	}
}

func (c *Client) Generate(ctx context.Context, input FormInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	completion, err := c.generator.Complete(ctx, BuildPrompt(c.variant, input))
	if err != nil {
		return "", &GenerationError{Cause: err}
	}

	text := strings.TrimSpace(completion)
	if text == "" {
		return "", &GenerationError{Cause: errors.New("empty completion")}
	}

	return text, nil
}

func (c *Client) Variant() PromptVariant {
	return c.variant
}
