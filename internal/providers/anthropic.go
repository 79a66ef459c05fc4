package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Anthropic implements the Rewriter interface using the official SDK.
type Anthropic struct {
	api   *anthropic.Client
	model anthropic.Model
}

// NewAnthropic creates a new Anthropic provider. The API key is read from
// ANTHROPIC_API_KEY.
func NewAnthropic(model string) (*Anthropic, error) {
	key := os.Getenv("ANTHROPIC_API_KEY")
	if key == "" {
		return nil, &authError{message: "ANTHROPIC_API_KEY environment variable is not set"}
	}
	client := anthropic.NewClient(option.WithAPIKey(key))
	return &Anthropic{
		api:   &client,
		model: anthropic.Model(model),
	}, nil
}

func (a *Anthropic) Name() string { return "anthropic" }

func (a *Anthropic) Rewrite(ctx context.Context, req RewriteRequest) (RewriteResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	var resp RewriteResponse
	err := retryWithBackoff(ctx, 3, func() error {
		msg, err := a.api.Messages.New(ctx, anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: int64(maxTokens),
			System: []anthropic.TextBlockParam{
				{Text: req.SystemPrompt},
			},
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
			},
		})
		if err != nil {
			return classifyAPIError(err)
		}

		var content string
		for _, block := range msg.Content {
			if block.Type == "text" {
				content += block.Text
			}
		}
		resp = RewriteResponse{
			Content:    content,
			TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		}
		return nil
	})

	return resp, err
}

// classifyAPIError maps SDK errors onto the retry helper's error types.
func classifyAPIError(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429:
			return &rateLimitError{}
		case 401, 403:
			return &authError{message: apierr.Error()}
		}
	}
	return fmt.Errorf("anthropic API call: %w", err)
}
