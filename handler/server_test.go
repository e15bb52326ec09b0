package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-agent/internal/usecase"
)

func doRequest(t *testing.T, h *Handler, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := NewApp(h).Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestApp_Health(t *testing.T) {
	h := mustNewHandler(t, &stubUseCase{})
	resp, body := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"status":"ok"}`, body)
}

func TestApp_Chat(t *testing.T) {
	uc := &stubUseCase{out: usecase.ChatOutput{Response: "hello"}}
	h := mustNewHandler(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Correlation-Id", "corr-9")

	resp, body := doRequest(t, h, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"response":"hello"}`, body)
	require.Equal(t, "corr-9", resp.Header.Get("X-Correlation-Id"))
	require.Equal(t, "hi", uc.in.Request.Query)
}

func TestApp_ChatRejectedModel(t *testing.T) {
	uc := &stubUseCase{err: &usecase.Error{Code: usecase.ErrorRejectedModel, Message: "Model name not allowed"}}
	h := mustNewHandler(t, uc)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")

	resp, body := doRequest(t, h, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"error":"Model name not allowed","code":"REJECTED_MODEL"}`, body)
}

func TestApp_ChatInvalidBody(t *testing.T) {
	h := mustNewHandler(t, &stubUseCase{})

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"query":"hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, body := doRequest(t, h, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Contains(t, body, `"code":"INVALID_INPUT"`)
	require.NotEmpty(t, resp.Header.Get("X-Correlation-Id"))
}

func TestApp_UnknownRoute(t *testing.T) {
	h := mustNewHandler(t, &stubUseCase{})
	resp, _ := doRequest(t, h, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
