package agentkit

import (
	"context"
	"fmt"
	"strings"

	"charm.land/fantasy"

	"chat-agent/internal/domain"
	"chat-agent/internal/usecase"
)

var _ usecase.AgentBuilder = Builder{}

// generator is the part of fantasy.Agent used here.
type generator interface {
	Generate(ctx context.Context, call fantasy.AgentCall) (*fantasy.AgentResult, error)
}

// Builder creates fantasy tool-calling agents.
type Builder struct{}

func (Builder) Build(model fantasy.LanguageModel, tools []fantasy.AgentTool, systemPrompt string) usecase.Agent {
	opts := []fantasy.AgentOption{fantasy.WithTools(tools...)}
	if systemPrompt != "" {
		opts = append(opts, fantasy.WithSystemPrompt(systemPrompt))
	}
	return &agent{inner: fantasy.NewAgent(model, opts...)}
}

type agent struct {
	inner generator
}

// Invoke sends query as the single user message and returns the transcript of
// every step the agent took, starting with that message.
func (a *agent) Invoke(ctx context.Context, query string) (domain.Transcript, error) {
	result, err := a.inner.Generate(ctx, fantasy.AgentCall{Prompt: query})
	if err != nil {
		return nil, fmt.Errorf("agent generate: %w", err)
	}
	return toTranscript(query, result), nil
}

func toTranscript(query string, result *fantasy.AgentResult) domain.Transcript {
	tr := domain.Transcript{{Role: domain.RoleUser, Text: query}}
	if result == nil {
		return tr
	}
	for _, step := range result.Steps {
		for _, msg := range step.Messages {
			tr = append(tr, toMessage(msg))
		}
	}
	return tr
}

func toMessage(msg fantasy.Message) domain.Message {
	out := domain.Message{Role: toRole(msg.Role)}
	var text strings.Builder
	for _, part := range msg.Content {
		if p, ok := fantasy.AsMessagePart[fantasy.TextPart](part); ok {
			text.WriteString(p.Text)
			continue
		}
		if p, ok := fantasy.AsMessagePart[fantasy.ToolCallPart](part); ok {
			out.ToolCalls = append(out.ToolCalls, p.ToolName)
			continue
		}
		if p, ok := fantasy.AsMessagePart[fantasy.ToolResultPart](part); ok {
			if res, ok := fantasy.AsToolResultOutputType[fantasy.ToolResultOutputContentText](p.Output); ok {
				text.WriteString(res.Text)
			} else if res, ok := fantasy.AsToolResultOutputType[fantasy.ToolResultOutputContentError](p.Output); ok && res.Error != nil {
				text.WriteString(res.Error.Error())
			}
		}
	}
	out.Text = text.String()
	return out
}

func toRole(role fantasy.MessageRole) domain.Role {
	switch role {
	case fantasy.MessageRoleSystem:
		return domain.RoleSystem
	case fantasy.MessageRoleUser:
		return domain.RoleUser
	case fantasy.MessageRoleAssistant:
		return domain.RoleAssistant
	case fantasy.MessageRoleTool:
		return domain.RoleTool
	default:
		return domain.Role(role)
	}
}
