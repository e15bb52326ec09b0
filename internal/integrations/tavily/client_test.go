package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSearchURL(t *testing.T) {
	cases := []struct {
		base string
		want string
	}{
		{"https://api.tavily.com", "https://api.tavily.com/search"},
		{"https://api.tavily.com/", "https://api.tavily.com/search"},
		{"http://localhost:8080", "http://localhost:8080/search"},
		{"", "https://api.tavily.com/search"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, searchURL(tc.base), "base=%q", tc.base)
	}
}

func TestNewClient_EmptyKey(t *testing.T) {
	_, err := NewClient("  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "api key")
}

func TestNewClient_Valid(t *testing.T) {
	c, err := NewClient("tvly-key")
	require.NoError(t, err)
	require.Equal(t, "https://api.tavily.com", c.baseURL)
	require.Equal(t, "basic", c.searchDepth)

	c, err = NewClient("tvly-key", WithBaseURL(" "), WithSearchDepth("advanced"))
	require.NoError(t, err)
	require.Equal(t, "https://api.tavily.com", c.baseURL)
	require.Equal(t, "advanced", c.searchDepth)
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	c, err := NewClient(
		"tvly-test",
		WithBaseURL(srv.URL),
		WithHTTPClient(&http.Client{Timeout: 2 * time.Second}),
	)
	require.NoError(t, err)
	return c
}

func TestClient_Search_HappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer tvly-test", r.Header.Get("Authorization"))
		reqBody, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var got searchRequest
		require.NoError(t, json.Unmarshal(reqBody, &got))
		require.Equal(t, searchRequest{Query: "golang release", MaxResults: 2, SearchDepth: "basic"}, got)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{
			"query": "golang release",
			"results": [
				{"title": "Go 1.25", "url": "https://go.dev/doc/go1.25", "content": "Go 1.25 is released", "score": 0.9},
				{"title": "Blog", "url": "https://go.dev/blog", "content": "The Go blog", "score": 0.5}
			]
		}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	results, err := c.Search(context.Background(), " golang release ", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://go.dev/doc/go1.25", results[0].URL)
	require.Equal(t, "Go 1.25 is released", results[0].Content)
}

func TestClient_Search_TruncatesToMaxResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"results":[{"url":"a"},{"url":"b"},{"url":"c"}]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	results, err := c.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestClient_Search_InvalidArguments(t *testing.T) {
	c, err := NewClient("tvly-test")
	require.NoError(t, err)

	_, err = c.Search(context.Background(), " ", 2)
	require.ErrorContains(t, err, "query")

	_, err = c.Search(context.Background(), "q", 0)
	require.ErrorContains(t, err, "max results")
}

func TestClient_Search_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
		_, _ = w.Write([]byte(`{"detail":{"error":"Unauthorized: missing or invalid API key."}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Search(context.Background(), "q", 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status")
	require.Contains(t, err.Error(), "401")

	var statusErr *HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusUnauthorized, statusErr.StatusCode)
}

func TestClient_Search_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`not-a-json`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	_, err := c.Search(context.Background(), "q", 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "decode response")
}

func TestClient_Search_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}
	_, err := c.Search(context.Background(), "q", 2)
	require.Error(t, err)
}

func TestClient_Search_NetworkError(t *testing.T) {
	c, err := NewClient("tvly-test")
	require.NoError(t, err)
	c.baseURL = "http://127.0.0.1:1"
	c.httpClient = &http.Client{Timeout: 100 * time.Millisecond}

	_, err = c.Search(context.Background(), "q", 2)
	require.Error(t, err)
	require.Contains(t, err.Error(), "request failed")
}

func TestClient_Search_NilHTTPClientFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv)
	c.httpClient = nil
	results, err := c.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Empty(t, results)
}
