package ui

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chat-agent/internal/client"
	"chat-agent/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()
	require.Equal(t, []domain.Provider{domain.ProviderGroq, domain.ProviderOpenAI}, c.Providers())
	require.Equal(t, []string{"llama-3.3-70b-versatile", "mixtral-8x7b-32768"}, c.Models(domain.ProviderGroq))
	require.Equal(t, []string{"gpt-4o-mini"}, c.Models(domain.ProviderOpenAI))
	require.Nil(t, c.Models("Anthropic"))
	require.Equal(t, []string{"Groq", "Openai"}, c.providerOptions())
}

func TestDraft_Request(t *testing.T) {
	d := NewDraft()
	require.True(t, d.AllowSearch)
	require.False(t, d.Complete())

	d.Provider = domain.ProviderGroq
	d.Model = "mixtral-8x7b-32768"
	d.SystemPrompt = "Be brief"
	d.Query = "   "
	_, err := d.Request()
	require.ErrorIs(t, err, ErrEmptyQuery)

	d.Query = "What is Go?"
	d.SearchSet = true
	require.True(t, d.Complete())
	req, err := d.Request()
	require.NoError(t, err)
	require.Equal(t, domain.ChatRequest{
		ModelName:     "mixtral-8x7b-32768",
		ModelProvider: domain.ProviderGroq,
		SystemPrompt:  "Be brief",
		Query:         "What is Go?",
		AllowSearch:   true,
	}, req)
}

func TestDraft_RequestNeedsModel(t *testing.T) {
	d := NewDraft()
	d.Query = "hi"
	_, err := d.Request()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrEmptyQuery)
}

func TestForm_FillSkipsWhenComplete(t *testing.T) {
	d := Draft{
		SystemPrompt: "Be brief",
		Provider:     domain.ProviderOpenAI,
		Model:        "gpt-4o-mini",
		Query:        "hi",
		AllowSearch:  false,
		SearchSet:    true,
	}
	got, err := NewForm(DefaultCatalog(), true).Fill(context.Background(), d)
	require.NoError(t, err)
	require.Equal(t, d, got)
}

func TestForm_FillRejectsUnknownProvider(t *testing.T) {
	d := Draft{SystemPrompt: "x", Provider: "Anthropic", Query: "hi", SearchSet: true}
	_, err := NewForm(DefaultCatalog(), true).Fill(context.Background(), d)
	require.ErrorContains(t, err, "Anthropic")
}

func TestPrinter_Success(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 80, "notty")
	require.NoError(t, p.Print(client.Reply{Response: "Gophers are friendly"}))
	out := buf.String()
	require.Contains(t, out, "Agent Response")
	require.Contains(t, out, "Gophers are friendly")
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 80, "notty")
	require.NoError(t, p.Print(client.ErrorReply("Model name not allowed", "REJECTED_MODEL")))
	out := buf.String()
	require.Contains(t, out, "Model name not allowed")
	require.Contains(t, out, "REJECTED_MODEL")
	require.NotContains(t, out, "Agent Response")
}

func TestPrinter_EmptyResponse(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, 80, "notty")
	require.NoError(t, p.Print(client.Reply{}))
	require.Contains(t, buf.String(), "Agent Response")
}
