package paramstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	params  map[string]string
	listErr error
	batches [][]string
	decrypt []bool
}

func (f *fakeAPI) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.batches = append(f.batches, in.Names)
	f.decrypt = append(f.decrypt, in.WithDecryption != nil && *in.WithDecryption)
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &ssm.GetParametersOutput{}
	for _, name := range in.Names {
		if v, ok := f.params[name]; ok {
			out.Parameters = append(out.Parameters, types.Parameter{Name: strPtr(name), Value: strPtr(v)})
		} else {
			out.InvalidParameters = append(out.InvalidParameters, name)
		}
	}
	return out, nil
}

func strPtr(s string) *string { return &s }

func TestLookup_ClientNotInitialized(t *testing.T) {
	_, err := (&Client{}).Lookup(context.Background(), "p")
	require.ErrorContains(t, err, "not initialized")
}

func TestNew_NilAPI(t *testing.T) {
	_, err := New(nil)
	require.ErrorContains(t, err, "must not be nil")
}

func TestLookup_SkipsMissingParameters(t *testing.T) {
	api := &fakeAPI{params: map[string]string{
		"/chat-agent/openai-api-key": "sk-1",
		"/chat-agent/tavily-api-key": `{"token":"tvly"}`,
	}}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Lookup(context.Background(),
		"/chat-agent/openai-api-key", "/chat-agent/groq-api-key", " ", "/chat-agent/tavily-api-key")
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"/chat-agent/openai-api-key": "sk-1",
		"/chat-agent/tavily-api-key": `{"token":"tvly"}`,
	}, got)
	require.Len(t, api.batches, 1)
	require.Len(t, api.batches[0], 3)
	require.Equal(t, []bool{true}, api.decrypt)
}

func TestLookup_Batches(t *testing.T) {
	api := &fakeAPI{params: map[string]string{}}
	names := make([]string, 0, 23)
	for i := range 23 {
		names = append(names, fmt.Sprintf("/p/%d", i))
	}
	client, err := New(api)
	require.NoError(t, err)

	got, err := client.Lookup(context.Background(), names...)
	require.NoError(t, err)
	require.Empty(t, got)
	require.Len(t, api.batches, 3)
	require.Len(t, api.batches[2], 3)
}

func TestLookup_NoNames(t *testing.T) {
	api := &fakeAPI{}
	client, err := New(api)
	require.NoError(t, err)
	got, err := client.Lookup(context.Background())
	require.NoError(t, err)
	require.Empty(t, got)
	require.Empty(t, api.batches)
}

func TestLookup_ApiError(t *testing.T) {
	client, err := New(&fakeAPI{listErr: errors.New("throttled")})
	require.NoError(t, err)
	_, err = client.Lookup(context.Background(), "/p/a")
	require.ErrorContains(t, err, "throttled")
}
