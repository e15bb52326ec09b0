package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chat-agent/internal/domain"
)

// DefaultURL is where a locally served agent listens.
const DefaultURL = "http://127.0.0.1:8000/api/chat"

// Reply is the body returned by the chat endpoint. An empty Response is a
// valid answer.
type Reply struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
	Code     string `json:"code,omitempty"`
	failed   bool
}

// ErrorReply builds a Reply carrying an error message.
func ErrorReply(message, code string) Reply {
	return Reply{Error: message, Code: code, failed: true}
}

// Failed reports whether the agent answered with an error message.
func (r Reply) Failed() bool {
	return r.failed || r.Error != ""
}

// replyBody records which keys the endpoint actually sent.
type replyBody struct {
	Response *string `json:"response"`
	Error    *string `json:"error"`
	Code     string  `json:"code"`
}

// HTTPStatusError captures non-200 responses from the chat endpoint.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("client: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Client posts chat requests to the agent API.
type Client struct {
	url        string
	httpClient *http.Client
}

type Option func(*Client)

func WithURL(url string) Option {
	return func(c *Client) {
		if url = strings.TrimSpace(url); url != "" {
			c.url = url
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func New(opts ...Option) *Client {
	c := &Client{
		url: DefaultURL,
		// Agent runs with web search can take a while.
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends req and decodes the reply. An error reply from the agent is
// returned as a Reply, not as an error.
func (c *Client) Chat(ctx context.Context, req domain.ChatRequest) (Reply, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return Reply{}, fmt.Errorf("client: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("client: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Reply{}, fmt.Errorf("client: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return Reply{}, fmt.Errorf("client: read response body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return Reply{}, &HTTPStatusError{StatusCode: res.StatusCode, URL: c.url, Body: string(raw)}
	}

	var rb replyBody
	if err := json.Unmarshal(raw, &rb); err != nil {
		return Reply{}, fmt.Errorf("client: decode response: %w", err)
	}
	// The error key wins, whatever else the body carries.
	if rb.Error != nil {
		return ErrorReply(*rb.Error, rb.Code), nil
	}
	if rb.Response == nil {
		return Reply{}, errors.New("client: response has neither response nor error")
	}
	return Reply{Response: *rb.Response}, nil
}
