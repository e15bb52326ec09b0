// Package config loads process configuration once at startup. Nothing in it is
// mutated after Load returns; values are passed explicitly to consumers.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Credentials holds the optional provider secrets. An empty field means the
// secret is not configured, which is a valid state.
type Credentials struct {
	OpenAIKey string `env:"OPENAI_API_KEY"`
	GroqKey   string `env:"GROQ_API_KEY"`
	TavilyKey string `env:"TAVILY_API_KEY"`
}

// Config is the full process configuration.
type Config struct {
	Credentials Credentials

	ListenAddr       string        `env:"LISTEN_ADDR" envDefault:"127.0.0.1:8000"`
	AllowedModels    []string      `env:"ALLOWED_MODELS" envSeparator:"," envDefault:"llama3-70b-8192,mixtral-8x7b-32768,llama-3.3-70b-versatile,gpt-4o-mini"`
	SearchMaxResults int           `env:"SEARCH_MAX_RESULTS" envDefault:"2"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" envDefault:"60s"`

	// ParamPrefix enables credential lookup in SSM for keys absent from the environment.
	ParamPrefix string `env:"PARAM_PREFIX"`
	// ExchangeTable enables the DynamoDB exchange log.
	ExchangeTable string `env:"EXCHANGE_TABLE"`

	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	GroqBaseURL   string `env:"GROQ_BASE_URL"`
	TavilyBaseURL string `env:"TAVILY_BASE_URL"`
	// SearchDepth is the Tavily search depth, "basic" or "advanced".
	SearchDepth string `env:"TAVILY_SEARCH_DEPTH" envDefault:"basic"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment take precedence over .env entries.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}
	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.Credentials = cfg.Credentials.trimmed()
	cfg.ParamPrefix = strings.TrimRight(strings.TrimSpace(cfg.ParamPrefix), "/")
	cfg.ExchangeTable = strings.TrimSpace(cfg.ExchangeTable)
	cfg.SearchDepth = strings.ToLower(strings.TrimSpace(cfg.SearchDepth))
	return cfg, nil
}

// Validate reports configuration that makes the service unusable.
func (c Config) Validate() error {
	if c.Credentials.OpenAIKey == "" && c.Credentials.GroqKey == "" {
		return errors.New("config: either GROQ_API_KEY or OPENAI_API_KEY must be provided")
	}
	if c.SearchMaxResults <= 0 {
		return fmt.Errorf("config: SEARCH_MAX_RESULTS must be positive, got %d", c.SearchMaxResults)
	}
	if c.SearchDepth != "basic" && c.SearchDepth != "advanced" {
		return fmt.Errorf("config: TAVILY_SEARCH_DEPTH must be basic or advanced, got %q", c.SearchDepth)
	}
	if len(c.AllowedModels) == 0 {
		return errors.New("config: ALLOWED_MODELS must not be empty")
	}
	return nil
}

// NeedsAWS reports whether any AWS-backed feature is enabled.
func (c Config) NeedsAWS() bool {
	return c.ParamPrefix != "" || c.ExchangeTable != ""
}

// Level maps LogLevel to a slog level, defaulting to info.
func (c Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (c Credentials) trimmed() Credentials {
	return Credentials{
		OpenAIKey: strings.TrimSpace(c.OpenAIKey),
		GroqKey:   strings.TrimSpace(c.GroqKey),
		TavilyKey: strings.TrimSpace(c.TavilyKey),
	}
}

// SearchEnabled reports whether a search credential is configured.
func (c Credentials) SearchEnabled() bool {
	return c.TavilyKey != ""
}

// ClientConfig configures the terminal client.
type ClientConfig struct {
	APIURL string `env:"AGENT_API_URL" envDefault:"http://127.0.0.1:8000/api/chat"`
}

// LoadClient reads the client settings from an optional .env file and the
// environment. Provider credentials are not needed on the client side.
func LoadClient(envFiles ...string) (ClientConfig, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return ClientConfig{}, fmt.Errorf("config: load env file: %w", err)
	}
	return parseClient(env.Options{})
}

func parseClient(opts env.Options) (ClientConfig, error) {
	var cfg ClientConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return ClientConfig{}, fmt.Errorf("config: parse environment: %w", err)
	}
	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	return cfg, nil
}
