package nlp

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/citegraph/pkg/types"
)

// flakyClient fails a configured number of times before succeeding.
type flakyClient struct {
	failures int
	calls    int
}

func (f *flakyClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, fmt.Errorf("transient failure %d", f.calls)
	}
	return &types.Response{Content: "ok"}, nil
}

func (f *flakyClient) Close() error { return nil }

func TestRetryClientEventuallySucceeds(t *testing.T) {
	inner := &flakyClient{failures: 2}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	resp, err := client.Chat(context.Background(), []types.Message{NewUserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Content)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryClientExhaustsRetries(t *testing.T) {
	inner := &flakyClient{failures: 10}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:        2,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	})

	_, err := client.Chat(context.Background(), []types.Message{NewUserMessage("hi")})
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls) // initial attempt + 2 retries
}

func TestRetryClientContextCancel(t *testing.T) {
	inner := &flakyClient{failures: 10}
	client := NewRetryClient(inner, &RetryConfig{
		MaxRetries:        5,
		InitialDelay:      50 * time.Millisecond,
		MaxDelay:          time.Second,
		BackoffMultiplier: 2.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Chat(ctx, []types.Message{NewUserMessage("hi")})
	require.Error(t, err)
	// The cancelled context stops the retry loop before exhausting attempts.
	assert.Less(t, inner.calls, 6)
}

func TestCompleteBuildsSystemUserPair(t *testing.T) {
	var seen []types.Message
	client := &recordingClient{onChat: func(messages []types.Message) {
		seen = messages
	}}

	out, err := Complete(context.Background(), client, "You are terse.", "Summarize attention.")
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	require.Len(t, seen, 2)
	assert.Equal(t, RoleSystem, seen[0].Role)
	assert.Equal(t, RoleUser, seen[1].Role)
}

type recordingClient struct {
	onChat func([]types.Message)
}

func (r *recordingClient) Chat(ctx context.Context, messages []types.Message) (*types.Response, error) {
	if r.onChat != nil {
		r.onChat(messages)
	}
	return &types.Response{Content: "ok"}, nil
}

func (r *recordingClient) Close() error { return nil }
