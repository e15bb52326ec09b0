package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ParamLookup fetches several parameters at once. Names that do not exist are
// absent from the returned map rather than reported as errors.
type ParamLookup interface {
	Lookup(ctx context.Context, names ...string) (map[string]string, error)
}

const (
	paramOpenAIKey = "/openai-api-key"
	paramGroqKey   = "/groq-api-key"
	paramTavilyKey = "/tavily-api-key"
)

// tokenPayload is the JSON shape secrets may be stored as in the parameter store.
type tokenPayload struct {
	Token string `json:"token"`
}

// ResolveCredentials fills credentials missing from the environment using the
// parameter store under prefix. Values already present are never overwritten.
func ResolveCredentials(ctx context.Context, creds Credentials, params ParamLookup, prefix string) (Credentials, error) {
	if params == nil {
		return Credentials{}, errors.New("config: param lookup must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return Credentials{}, errors.New("config: parameter prefix must not be empty")
	}

	wanted := map[string]*string{}
	if creds.OpenAIKey == "" {
		wanted[prefix+paramOpenAIKey] = &creds.OpenAIKey
	}
	if creds.GroqKey == "" {
		wanted[prefix+paramGroqKey] = &creds.GroqKey
	}
	if creds.TavilyKey == "" {
		wanted[prefix+paramTavilyKey] = &creds.TavilyKey
	}
	if len(wanted) == 0 {
		return creds, nil
	}

	names := make([]string, 0, len(wanted))
	for name := range wanted {
		names = append(names, name)
	}
	found, err := params.Lookup(ctx, names...)
	if err != nil {
		return Credentials{}, fmt.Errorf("config: lookup credentials: %w", err)
	}
	for name, dst := range wanted {
		raw, ok := found[name]
		if !ok {
			continue
		}
		secret, err := decodeSecret(raw)
		if err != nil {
			return Credentials{}, fmt.Errorf("config: decode %s: %w", name, err)
		}
		*dst = secret
	}
	return creds, nil
}

// decodeSecret accepts either a raw secret or {"token":"..."}.
func decodeSecret(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return raw, nil
	}
	var tp tokenPayload
	if err := json.Unmarshal([]byte(raw), &tp); err != nil {
		return "", fmt.Errorf("unmarshal token value as JSON: %w", err)
	}
	if strings.TrimSpace(tp.Token) == "" {
		return "", errors.New("token is empty")
	}
	return strings.TrimSpace(tp.Token), nil
}
