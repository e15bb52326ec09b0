package agentkit

import (
	"context"
	"encoding/json"
	"fmt"

	"charm.land/fantasy"

	"chat-agent/internal/integrations/tavily"
	"chat-agent/internal/usecase"
)

const (
	SearchToolName        = "tavily_search_results_json"
	searchToolDescription = "A search engine optimized for comprehensive, accurate, and trusted results. " +
		"Useful for when you need to answer questions about current events. Input should be a search query."
)

// Searcher runs web searches.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]tavily.Result, error)
}

type searchInput struct {
	Query string `json:"query" description:"search query to look up"`
}

type searchHit struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchTools returns a factory that builds a Tavily-backed search tool per request.
func SearchTools(opts ...tavily.Option) usecase.SearchToolFactory {
	return func(apiKey string, maxResults int) (fantasy.AgentTool, error) {
		client, err := tavily.NewClient(apiKey, opts...)
		if err != nil {
			return nil, err
		}
		return NewSearchTool(client, maxResults), nil
	}
}

// NewSearchTool exposes s as an agent tool returning at most maxResults hits.
func NewSearchTool(s Searcher, maxResults int) fantasy.AgentTool {
	return fantasy.NewAgentTool(SearchToolName, searchToolDescription,
		func(ctx context.Context, in searchInput, _ fantasy.ToolCall) (fantasy.ToolResponse, error) {
			return runSearch(ctx, s, maxResults, in)
		})
}

// runSearch reports search failures to the model as error responses so the
// agent can recover instead of aborting the run.
func runSearch(ctx context.Context, s Searcher, maxResults int, in searchInput) (fantasy.ToolResponse, error) {
	results, err := s.Search(ctx, in.Query, maxResults)
	if err != nil {
		return fantasy.NewTextErrorResponse(err.Error()), nil
	}
	hits := make([]searchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, searchHit{URL: r.URL, Content: r.Content})
	}
	payload, err := json.Marshal(hits)
	if err != nil {
		return fantasy.ToolResponse{}, fmt.Errorf("encode search results: %w", err)
	}
	return fantasy.NewTextResponse(string(payload)), nil
}
