package generator

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaudeClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-api-key"))
		assert.Equal(t, claudeAPIVersion, r.Header.Get("anthropic-version"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant",
			"content":[{"type":"text","text":"Hello, world!"}],"stop_reason":"end_turn"}`)
	}))
	defer server.Close()

	c := NewClaudeClient(ClaudeConfig{APIKey: "test-api-key", APIURL: server.URL})
	text, err := c.Complete(context.Background(), "system", "user")

	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", text)
}

func TestClaudeClient_JudgeImage_SendsImageBlock(t *testing.T) {
	var captured claudeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &captured))

		io.WriteString(w, `{"content":[{"type":"text","text":"MATCH"}]}`)
	}))
	defer server.Close()

	c := NewClaudeClient(ClaudeConfig{APIKey: "k", APIURL: server.URL})
	verdict, err := c.JudgeImage(context.Background(), "https://example.com/x.jpg", "does it match?")

	require.NoError(t, err)
	assert.Equal(t, "MATCH", verdict)

	require.Len(t, captured.Messages, 1)
	blocks, ok := captured.Messages[0].Content.([]any)
	require.True(t, ok)
	require.Len(t, blocks, 2)

	img, ok := blocks[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "image", img["type"])
	source, ok := img["source"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "url", source["type"])
	assert.Equal(t, "https://example.com/x.jpg", source["url"])
}

func TestClaudeClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{"error":{"type":"overloaded_error","message":"try later"}}`)
	}))
	defer server.Close()

	c := NewClaudeClient(ClaudeConfig{APIKey: "k", APIURL: server.URL})
	_, err := c.Complete(context.Background(), "", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "overloaded_error")
}

func TestClaudeClient_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClaudeClient(ClaudeConfig{APIKey: "bad", APIURL: server.URL})
	_, err := c.Complete(context.Background(), "", "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}
