package providers

import (
	"context"
	"fmt"
)

// RewriteRequest contains the prompts sent to an LLM.
type RewriteRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
	Temperature  float64
}

// RewriteResponse contains the raw response from an LLM.
type RewriteResponse struct {
	Content    string
	TokensUsed int
}

// Rewriter is the provider abstraction interface.
type Rewriter interface {
	Rewrite(ctx context.Context, req RewriteRequest) (RewriteResponse, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Rewriter, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// KnownModels lists commonly used models per provider for `empath models`.
func KnownModels() map[string][]string {
	return map[string][]string{
		"anthropic": {
			"claude-sonnet-4-20250514",
			"claude-opus-4-20250514",
			"claude-3-5-haiku-20241022",
		},
		"openai": {
			"gpt-4o",
			"gpt-4o-mini",
			"gpt-4.1",
		},
		"gemini": {
			"gemini-2.0-flash",
			"gemini-1.5-pro",
		},
		"ollama": {
			"llama3.1",
			"qwen2.5-coder",
			"deepseek-coder-v2",
		},
	}
}
