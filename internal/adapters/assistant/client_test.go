package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"organizaai/internal/domain"
)

func TestOpenAIClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 1)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Que tal um churrasco?"}}]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), server.URL, "test-key", "test-model")
	reply, err := client.Complete(context.Background(), []domain.ChatMessage{
		{Role: "user", Content: "Me ajude a planejar uma festa"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Que tal um churrasco?", reply)
}

func TestOpenAIClient_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), server.URL, "test-key", "test-model")
	_, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "oi"}})
	require.Error(t, err)
}

func TestOpenAIClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.Client(), server.URL, "test-key", "test-model")
	_, err := client.Complete(context.Background(), []domain.ChatMessage{{Role: "user", Content: "oi"}})
	require.Error(t, err)
}
