package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chat-agent/internal/domain"
)

// RequestDispatcher is the downstream that handles accepted requests.
type RequestDispatcher interface {
	Dispatch(ctx context.Context, req domain.ChatRequest) (string, error)
}

// ExchangeRecorder persists accepted exchanges.
type ExchangeRecorder interface {
	Record(ctx context.Context, ex domain.Exchange) error
}

// ChatService gates requests on the model allow-list and forwards accepted
// ones to the dispatcher.
type ChatService struct {
	allowed    AllowList
	dispatcher RequestDispatcher
	recorder   ExchangeRecorder
}

type ChatInput struct {
	ExchangeID string
	Request    domain.ChatRequest
}

type ChatOutput struct {
	ExchangeID string
	Response   string
}

// NewChatService creates a ChatService. recorder may be nil, in which case
// nothing is persisted.
func NewChatService(allowed AllowList, d RequestDispatcher, recorder ExchangeRecorder) (*ChatService, error) {
	if allowed.Len() == 0 {
		return nil, errors.New("usecase: allow-list must not be empty")
	}
	if d == nil {
		return nil, errors.New("usecase: dispatcher must not be nil")
	}
	return &ChatService{allowed: allowed, dispatcher: d, recorder: recorder}, nil
}

func (s *ChatService) Chat(ctx context.Context, in ChatInput) (ChatOutput, error) {
	out := ChatOutput{ExchangeID: in.ExchangeID}
	if out.ExchangeID == "" {
		out.ExchangeID = newUUID()
	}

	req := in.Request
	if !s.allowed.Contains(req.ModelName) {
		return out, newError(ErrorRejectedModel, "model_not_allowed", "Model name not allowed", nil)
	}

	resp, err := s.dispatcher.Dispatch(ctx, req)
	s.record(ctx, out.ExchangeID, req, resp, err)
	if err != nil {
		var ucErr *Error
		if !errors.As(err, &ucErr) {
			err = unhandled("dispatch_error", err)
		}
		return out, err
	}
	out.Response = resp
	return out, nil
}

func (s *ChatService) record(ctx context.Context, id string, req domain.ChatRequest, resp string, err error) {
	if s.recorder == nil {
		return
	}
	ex := domain.Exchange{
		ID:          id,
		CreatedAt:   now().UTC(),
		Provider:    req.ModelProvider,
		Model:       req.ModelName,
		AllowSearch: req.AllowSearch,
		Query:       req.Query,
		Response:    resp,
	}
	if err != nil {
		ex.ErrorCode = string(CodeOf(err))
	}
	// The exchange log is best effort and never alters the reply.
	if recErr := s.recorder.Record(context.WithoutCancel(ctx), ex); recErr != nil {
		slog.WarnContext(ctx, "failed to record exchange", "exchange_id", id, "err", recErr)
	}
}

var newUUID = func() string {
	return uuid.NewString()
}

var now = time.Now
