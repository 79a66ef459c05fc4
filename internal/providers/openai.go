package providers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAI implements the Rewriter interface using the official SDK.
type OpenAI struct {
	api   openai.Client
	model openai.ChatModel
}

// NewOpenAI creates a new OpenAI provider. The API key is read from
// OPENAI_API_KEY.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, &authError{message: "OPENAI_API_KEY environment variable is not set"}
	}
	return &OpenAI{
		api:   openai.NewClient(option.WithAPIKey(key)),
		model: openai.ChatModel(model),
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Rewrite(ctx context.Context, req RewriteRequest) (RewriteResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}

	var resp RewriteResponse
	err := retryWithBackoff(ctx, 3, func() error {
		completion, err := o.api.Chat.Completions.New(ctx, params)
		if err != nil {
			return classifyOpenAIError(err)
		}
		if len(completion.Choices) == 0 {
			return fmt.Errorf("openai returned no choices")
		}
		resp = RewriteResponse{
			Content:    completion.Choices[0].Message.Content,
			TokensUsed: int(completion.Usage.TotalTokens),
		}
		return nil
	})

	return resp, err
}

func classifyOpenAIError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case 429:
			return &rateLimitError{}
		case 401, 403:
			return &authError{message: apierr.Error()}
		}
	}
	return fmt.Errorf("openai API call: %w", err)
}
