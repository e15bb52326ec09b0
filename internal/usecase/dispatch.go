package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"charm.land/fantasy"

	"chat-agent/internal/config"
	"chat-agent/internal/domain"
)

const defaultSearchMaxResults = 2

// ModelConstructor builds an LLM client handle for a model using apiKey.
type ModelConstructor func(ctx context.Context, apiKey, model string) (fantasy.LanguageModel, error)

// SearchToolFactory builds the web search tool offered to agents.
type SearchToolFactory func(apiKey string, maxResults int) (fantasy.AgentTool, error)

// AgentBuilder constructs a single reasoning agent.
type AgentBuilder interface {
	Build(model fantasy.LanguageModel, tools []fantasy.AgentTool, systemPrompt string) Agent
}

// Agent runs one invocation and returns the full transcript it produced.
type Agent interface {
	Invoke(ctx context.Context, query string) (domain.Transcript, error)
}

// Provider is one entry of the provider registry.
type Provider struct {
	Label      string
	Credential func(config.Credentials) string
	NewModel   ModelConstructor
}

// Providers maps a requested provider to how its client is built.
type Providers map[domain.Provider]Provider

// NewProviders returns the registry of supported providers.
func NewProviders(openAI, groq ModelConstructor) Providers {
	return Providers{
		domain.ProviderOpenAI: {
			Label:      "OpenAI",
			Credential: func(c config.Credentials) string { return c.OpenAIKey },
			NewModel:   openAI,
		},
		domain.ProviderGroq: {
			Label:      "Groq",
			Credential: func(c config.Credentials) string { return c.GroqKey },
			NewModel:   groq,
		},
	}
}

// Dispatcher resolves credentials, builds the model and tools, and runs the
// agent once for a request.
type Dispatcher struct {
	creds      config.Credentials
	providers  Providers
	agents     AgentBuilder
	search     SearchToolFactory
	maxResults int
	timeout    time.Duration
}

type DispatcherOption func(*Dispatcher)

func WithSearchMaxResults(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxResults = n
		}
	}
}

// WithTimeout bounds model construction and agent invocation. Zero disables it.
func WithTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

func NewDispatcher(creds config.Credentials, providers Providers, agents AgentBuilder, search SearchToolFactory, opts ...DispatcherOption) (*Dispatcher, error) {
	if len(providers) == 0 {
		return nil, errors.New("usecase: provider registry must not be empty")
	}
	for name, p := range providers {
		if p.Credential == nil || p.NewModel == nil {
			return nil, fmt.Errorf("usecase: provider %q is incomplete", name)
		}
	}
	if agents == nil {
		return nil, errors.New("usecase: agent builder must not be nil")
	}
	if search == nil {
		return nil, errors.New("usecase: search tool factory must not be nil")
	}
	d := &Dispatcher{
		creds:      creds,
		providers:  providers,
		agents:     agents,
		search:     search,
		maxResults: defaultSearchMaxResults,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch runs the request through the agent and returns the final assistant
// message text. Every failure is returned as *Error.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.ChatRequest) (resp string, err error) {
	provider, known := d.providers[req.ModelProvider]
	if known && provider.Credential(d.creds) == "" {
		return "", dispatchError(ErrorMissingCredential, strings.ToLower(provider.Label)+"_key_missing",
			provider.Label+" API key not configured", nil)
	}
	if req.AllowSearch && !d.creds.SearchEnabled() {
		return "", dispatchError(ErrorMissingCredential, "tavily_key_missing",
			"Tavily API key required for web search", nil)
	}

	defer func() {
		if r := recover(); r != nil {
			resp, err = "", unhandled("agent_panic", fmt.Errorf("panic: %v", r))
		}
	}()

	tools := []fantasy.AgentTool{}
	if req.AllowSearch {
		tool, toolErr := d.search(d.creds.TavilyKey, d.maxResults)
		if toolErr != nil {
			return "", unhandled("search_tool_error", toolErr)
		}
		tools = append(tools, tool)
	}

	if !known {
		return "", dispatchError(ErrorUnsupportedProvider, "unsupported_provider",
			fmt.Sprintf("Unsupported provider %s", req.ModelProvider), nil)
	}

	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	model, err := provider.NewModel(ctx, provider.Credential(d.creds), req.ModelName)
	if err != nil {
		return "", unhandled("model_init_error", err)
	}

	agent := d.agents.Build(model, tools, req.SystemPrompt)
	transcript, err := agent.Invoke(ctx, req.Query)
	if err != nil {
		return "", unhandled("agent_invoke_error", err)
	}

	last, ok := transcript.LastAssistant()
	if !ok {
		return "", dispatchError(ErrorEmptyResponse, "no_assistant_message", "No valid AI response generated", nil)
	}
	return last.Text, nil
}

func unhandled(reason string, err error) *Error {
	return dispatchError(ErrorUnhandled, reason, "processing request: "+err.Error(), err)
}
