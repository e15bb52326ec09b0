package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"chat-agent/handler"
	"chat-agent/internal/config"
	"chat-agent/internal/integrations/agentkit"
	"chat-agent/internal/integrations/paramstore"
	"chat-agent/internal/integrations/tavily"
	"chat-agent/internal/repository"
	"chat-agent/internal/usecase"
)

// loadConfig reads configuration, fills credentials from SSM when enabled
// and installs the default logger.
func loadConfig(ctx context.Context) (config.Config, usecase.ExchangeRecorder, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.SetDefault(newLogger(os.Stderr, cfg))

	var recorder usecase.ExchangeRecorder
	if cfg.NeedsAWS() {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return config.Config{}, nil, fmt.Errorf("load AWS config: %w", err)
		}
		if cfg.ParamPrefix != "" {
			params, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
			if err != nil {
				return config.Config{}, nil, fmt.Errorf("create SSM client: %w", err)
			}
			cfg.Credentials, err = config.ResolveCredentials(ctx, cfg.Credentials, params, cfg.ParamPrefix)
			if err != nil {
				return config.Config{}, nil, err
			}
		}
		if cfg.ExchangeTable != "" {
			repo, err := repository.New(awsdynamodb.NewFromConfig(awsCfg), cfg.ExchangeTable)
			if err != nil {
				return config.Config{}, nil, fmt.Errorf("create exchange log: %w", err)
			}
			recorder = repo
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	if !cfg.Credentials.SearchEnabled() {
		slog.Warn("TAVILY_API_KEY is not set; web search disabled")
	}
	return cfg, recorder, nil
}

func buildHandler(ctx context.Context) (*handler.Handler, config.Config, error) {
	cfg, recorder, err := loadConfig(ctx)
	if err != nil {
		return nil, config.Config{}, err
	}

	providers := usecase.NewProviders(
		agentkit.OpenAIModels(agentkit.ModelOptions{BaseURL: cfg.OpenAIBaseURL}),
		agentkit.GroqModels(agentkit.ModelOptions{BaseURL: cfg.GroqBaseURL}),
	)
	dispatcher, err := usecase.NewDispatcher(
		cfg.Credentials,
		providers,
		agentkit.Builder{},
		agentkit.SearchTools(
			tavily.WithBaseURL(cfg.TavilyBaseURL),
			tavily.WithSearchDepth(cfg.SearchDepth),
		),
		usecase.WithSearchMaxResults(cfg.SearchMaxResults),
		usecase.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("create dispatcher: %w", err)
	}

	chatService, err := usecase.NewChatService(usecase.NewAllowList(cfg.AllowedModels...), dispatcher, recorder)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("create chat service: %w", err)
	}

	h, err := handler.NewHandler(chatService)
	if err != nil {
		return nil, config.Config{}, fmt.Errorf("create handler: %w", err)
	}
	return h, cfg, nil
}

func newLogger(w io.Writer, cfg config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level()}
	if strings.EqualFold(strings.TrimSpace(cfg.LogFormat), "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
