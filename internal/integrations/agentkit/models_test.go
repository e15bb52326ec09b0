package agentkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModels_RejectEmptyModelName(t *testing.T) {
	_, err := OpenAIModels(ModelOptions{})(context.Background(), "sk-test", " ")
	require.ErrorContains(t, err, "model name must not be empty")

	_, err = GroqModels(ModelOptions{})(context.Background(), "gsk-test", "")
	require.ErrorContains(t, err, "model name must not be empty")
}

func TestModels_Construct(t *testing.T) {
	lm, err := OpenAIModels(ModelOptions{BaseURL: "http://localhost:9/v1"})(context.Background(), "sk-test", "gpt-4o-mini")
	require.NoError(t, err)
	require.NotNil(t, lm)

	lm, err = GroqModels(ModelOptions{})(context.Background(), "gsk-test", "llama-3.3-70b-versatile")
	require.NoError(t, err)
	require.NotNil(t, lm)
}
