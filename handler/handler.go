package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"chat-agent/internal/domain"
	"chat-agent/internal/usecase"
)

const correlationHeader = "X-Correlation-Id"

// validCorrelationID bounds caller-supplied ids, which become exchange keys.
var validCorrelationID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// ChatService is the use case the handler delegates to.
type ChatService interface {
	Chat(ctx context.Context, in usecase.ChatInput) (usecase.ChatOutput, error)
}

// Handler serves the chat endpoint for both API Gateway and the local server.
type Handler struct {
	svc ChatService
}

// chatRequest mirrors domain.ChatRequest with pointer fields so absent keys
// can be told apart from zero values.
type chatRequest struct {
	ModelName     *string `json:"model_name"`
	ModelProvider *string `json:"model_provider"`
	SystemPrompt  *string `json:"system_prompt"`
	Query         *string `json:"query"`
	AllowSearch   *bool   `json:"allow_search"`
}

type chatResponse struct {
	Response string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// reply is the transport-neutral result of one chat call.
type reply struct {
	status        int
	body          any
	correlationID string
}

func NewHandler(svc ChatService) (*Handler, error) {
	if svc == nil {
		return nil, errors.New("handler: chat service must not be nil")
	}
	return &Handler{svc: svc}, nil
}

// Handle is the API Gateway proxy entry point.
func (h *Handler) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	raw := []byte(event.Body)
	if event.IsBase64Encoded {
		// An undecodable body is left empty and rejected as invalid JSON.
		raw, _ = base64.StdEncoding.DecodeString(event.Body)
	}
	r := h.chat(ctx, raw, headerValue(event.Headers, correlationHeader))

	body, err := json.Marshal(r.body)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: r.status,
		Headers: map[string]string{
			"Content-Type":    "application/json",
			correlationHeader: r.correlationID,
		},
		Body: string(body),
	}, nil
}

func (h *Handler) chat(ctx context.Context, raw []byte, correlationID string) reply {
	start := time.Now()
	correlationID = strings.TrimSpace(correlationID)
	if correlationID != "" && !validCorrelationID.MatchString(correlationID) {
		slog.WarnContext(ctx, "ignoring invalid correlation id", "length", len(correlationID))
		correlationID = ""
	}

	req, err := decodeRequest(raw)
	if err != nil {
		if correlationID == "" {
			correlationID = newCorrelationID()
		}
		slog.InfoContext(ctx, "chat request rejected",
			"exchange_id", correlationID,
			"code", usecase.ErrorInvalidInput,
			"err", err,
		)
		return reply{
			status:        http.StatusUnprocessableEntity,
			body:          errorResponse{Error: err.Error(), Code: string(usecase.ErrorInvalidInput)},
			correlationID: correlationID,
		}
	}

	out, err := h.svc.Chat(ctx, usecase.ChatInput{ExchangeID: correlationID, Request: req})
	if out.ExchangeID == "" {
		out.ExchangeID = correlationID
	}
	attrs := []any{
		"exchange_id", out.ExchangeID,
		"provider", req.ModelProvider,
		"model", req.ModelName,
		"allow_search", req.AllowSearch,
		"duration", time.Since(start),
	}
	if err != nil {
		code := usecase.CodeOf(err)
		slog.InfoContext(ctx, "chat request failed", append(attrs, "code", code, "err", err)...)
		// Failures keep HTTP 200 so existing clients that only read the body
		// continue to work.
		return reply{
			status:        http.StatusOK,
			body:          errorResponse{Error: usecase.Text("", err), Code: string(code)},
			correlationID: out.ExchangeID,
		}
	}
	slog.InfoContext(ctx, "chat request completed", attrs...)
	return reply{
		status:        http.StatusOK,
		body:          chatResponse{Response: out.Response},
		correlationID: out.ExchangeID,
	}
}

func decodeRequest(raw []byte) (domain.ChatRequest, error) {
	var in chatRequest
	if err := json.Unmarshal(raw, &in); err != nil {
		return domain.ChatRequest{}, errors.New("invalid JSON body")
	}
	var missing []string
	if in.ModelName == nil {
		missing = append(missing, "model_name")
	}
	if in.ModelProvider == nil {
		missing = append(missing, "model_provider")
	}
	if in.SystemPrompt == nil {
		missing = append(missing, "system_prompt")
	}
	if in.Query == nil {
		missing = append(missing, "query")
	}
	if in.AllowSearch == nil {
		missing = append(missing, "allow_search")
	}
	if len(missing) > 0 {
		return domain.ChatRequest{}, errors.New("missing required fields: " + strings.Join(missing, ", "))
	}
	return domain.ChatRequest{
		ModelName:     *in.ModelName,
		ModelProvider: domain.Provider(*in.ModelProvider),
		SystemPrompt:  *in.SystemPrompt,
		Query:         *in.Query,
		AllowSearch:   *in.AllowSearch,
	}, nil
}

// headerValue looks key up case-insensitively, as API Gateway may deliver
// headers in any casing.
func headerValue(headers map[string]string, key string) string {
	if v, ok := headers[key]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

var newCorrelationID = func() string {
	return uuid.NewString()
}
