package ui

import "chat-agent/internal/domain"

// Catalog lists the models offered for each provider, in display order.
type Catalog struct {
	providers []domain.Provider
	models    map[domain.Provider][]string
}

// DefaultCatalog is the selection offered by the chat form.
func DefaultCatalog() Catalog {
	return Catalog{
		providers: []domain.Provider{domain.ProviderGroq, domain.ProviderOpenAI},
		models: map[domain.Provider][]string{
			domain.ProviderGroq:   {"llama-3.3-70b-versatile", "mixtral-8x7b-32768"},
			domain.ProviderOpenAI: {"gpt-4o-mini"},
		},
	}
}

func (c Catalog) Providers() []domain.Provider {
	return c.providers
}

// Models returns the models for p, or nil when p is not offered.
func (c Catalog) Models(p domain.Provider) []string {
	return c.models[p]
}

func (c Catalog) providerOptions() []string {
	providers := c.Providers()
	out := make([]string, 0, len(providers))
	for _, p := range providers {
		out = append(out, string(p))
	}
	return out
}
