package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"chat-agent/internal/domain"
)

// ErrEmptyQuery is returned when the user submits a blank query. Nothing is
// sent to the agent in that case.
var ErrEmptyQuery = errors.New("query must not be blank")

// Draft holds a chat request while it is being filled in. Values set from
// flags are kept and only the rest are asked for.
type Draft struct {
	SystemPrompt string
	Provider     domain.Provider
	Model        string
	Query        string
	AllowSearch  bool
	// SearchSet marks AllowSearch as chosen already.
	SearchSet bool
}

// NewDraft returns a Draft with search enabled, as the form defaults to.
func NewDraft() Draft {
	return Draft{AllowSearch: true}
}

// Complete reports whether every field the agent needs has been chosen.
func (d Draft) Complete() bool {
	return d.Provider != "" && d.Model != "" && d.SearchSet && strings.TrimSpace(d.Query) != ""
}

// Request validates the draft and converts it to the wire request.
func (d Draft) Request() (domain.ChatRequest, error) {
	if strings.TrimSpace(d.Query) == "" {
		return domain.ChatRequest{}, ErrEmptyQuery
	}
	if d.Provider == "" || d.Model == "" {
		return domain.ChatRequest{}, errors.New("provider and model must be selected")
	}
	return domain.ChatRequest{
		ModelName:     d.Model,
		ModelProvider: d.Provider,
		SystemPrompt:  d.SystemPrompt,
		Query:         d.Query,
		AllowSearch:   d.AllowSearch,
	}, nil
}

// Form asks for the fields of a Draft that are still missing.
type Form struct {
	catalog    Catalog
	accessible bool
}

func NewForm(catalog Catalog, accessible bool) *Form {
	return &Form{catalog: catalog, accessible: accessible}
}

// Fill runs the interactive form. The model list depends on the provider, so
// the provider is asked for first in its own step.
func (f *Form) Fill(ctx context.Context, d Draft) (Draft, error) {
	var first []huh.Field
	if d.SystemPrompt == "" {
		first = append(first, huh.NewText().
			Title("Define your AI agent").
			Placeholder("Type your system prompt here").
			Lines(3).
			Value(&d.SystemPrompt))
	}
	provider := string(d.Provider)
	if provider == "" {
		first = append(first, huh.NewSelect[string]().
			Title("Select Provider:").
			Options(huh.NewOptions(f.catalog.providerOptions()...)...).
			Value(&provider))
	}
	if err := f.run(ctx, first); err != nil {
		return d, err
	}
	d.Provider = domain.Provider(provider)

	var second []huh.Field
	if d.Model == "" {
		models := f.catalog.Models(d.Provider)
		if len(models) == 0 {
			return d, fmt.Errorf("no models offered for provider %q", d.Provider)
		}
		second = append(second, huh.NewSelect[string]().
			Title(fmt.Sprintf("Select %s Model Name:", d.Provider)).
			Options(huh.NewOptions(models...)...).
			Value(&d.Model))
	}
	if !d.SearchSet {
		second = append(second, huh.NewConfirm().
			Title("Allow Search?").
			Value(&d.AllowSearch))
	}
	if strings.TrimSpace(d.Query) == "" {
		second = append(second, huh.NewText().
			Title("Type your query").
			Placeholder("Ask anything").
			Lines(6).
			Value(&d.Query))
	}
	if err := f.run(ctx, second); err != nil {
		return d, err
	}
	d.SearchSet = true
	return d, nil
}

func (f *Form) run(ctx context.Context, fields []huh.Field) error {
	if len(fields) == 0 {
		return nil
	}
	return huh.NewForm(huh.NewGroup(fields...)).
		WithAccessible(f.accessible).
		RunWithContext(ctx)
}
