package agentkit

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"charm.land/fantasy"
	fopenai "charm.land/fantasy/providers/openai"
	fopenaicompat "charm.land/fantasy/providers/openaicompat"

	"chat-agent/internal/usecase"
)

const (
	groqName    = "groq"
	groqBaseURL = "https://api.groq.com/openai/v1"
)

// ModelOptions tunes how provider clients reach their APIs.
type ModelOptions struct {
	BaseURL    string
	HTTPClient *http.Client
}

// OpenAIModels returns a constructor for OpenAI chat models.
func OpenAIModels(o ModelOptions) usecase.ModelConstructor {
	return func(ctx context.Context, apiKey, model string) (fantasy.LanguageModel, error) {
		opts := []fopenai.Option{fopenai.WithAPIKey(apiKey)}
		if base := strings.TrimSpace(o.BaseURL); base != "" {
			opts = append(opts, fopenai.WithBaseURL(base))
		}
		if o.HTTPClient != nil {
			opts = append(opts, fopenai.WithHTTPClient(o.HTTPClient))
		}
		provider, err := fopenai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("new openai provider: %w", err)
		}
		return languageModel(ctx, provider, model)
	}
}

// GroqModels returns a constructor for Groq chat models served through the
// OpenAI-compatible API.
func GroqModels(o ModelOptions) usecase.ModelConstructor {
	return func(ctx context.Context, apiKey, model string) (fantasy.LanguageModel, error) {
		base := strings.TrimSpace(o.BaseURL)
		if base == "" {
			base = groqBaseURL
		}
		opts := []fopenaicompat.Option{
			fopenaicompat.WithName(groqName),
			fopenaicompat.WithAPIKey(apiKey),
			fopenaicompat.WithBaseURL(base),
		}
		if o.HTTPClient != nil {
			opts = append(opts, fopenaicompat.WithHTTPClient(o.HTTPClient))
		}
		provider, err := fopenaicompat.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("new groq provider: %w", err)
		}
		return languageModel(ctx, provider, model)
	}
}

func languageModel(ctx context.Context, provider fantasy.Provider, model string) (fantasy.LanguageModel, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, fmt.Errorf("language model: model name must not be empty")
	}
	lm, err := provider.LanguageModel(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("language model %q: %w", model, err)
	}
	return lm, nil
}
