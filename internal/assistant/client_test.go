package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PCInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/pc-info", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cpu": "Ryzen 7", "memory_gb": 32}`))
	}))
	defer srv.Close()

	info, err := NewClient(srv.URL + "/").PCInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ryzen 7", info["cpu"])
	assert.Equal(t, float64(32), info["memory_gb"])
}

func TestClient_PCInfoStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).PCInfo(context.Background())
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
	assert.Equal(t, "/api/pc-info", statusErr.Path)
}

func TestClient_SendMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/send", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(chatResponse{Reply: "echo: " + req.Text})
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).SendMessage(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "echo: hello", reply)
}

func TestClient_SendMessageBlankIsNoop(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	reply, err := NewClient(srv.URL).SendMessage(context.Background(), "   \n")
	require.NoError(t, err)
	assert.Empty(t, reply)
	assert.False(t, called)
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).SendMessage(context.Background(), "hi")
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Ask(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat/command-search", func(w http.ResponseWriter, r *http.Request) {
		var req commandSearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "disk usage", req.UserText)
		json.NewEncoder(w).Encode(commandSearchResponse{Prompt: "run: df -h"})
	})
	mux.HandleFunc("/api/chat/send", func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "run: df -h", req.Text)
		json.NewEncoder(w).Encode(chatResponse{Reply: "42% used"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	prompt, reply, err := NewClient(srv.URL).Ask(context.Background(), "disk usage")
	require.NoError(t, err)
	assert.Equal(t, "run: df -h", prompt)
	assert.Equal(t, "42% used", reply)
}

func TestClient_AskSearchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "/api/chat/send", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := NewClient(srv.URL).Ask(context.Background(), "disk usage")
	assert.ErrorContains(t, err, "command search")
}

func TestClient_CommandSearchCached(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(commandSearchResponse{Prompt: "run: uptime"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	for _, text := range []string{"How long up?", "  how LONG   up? "} {
		prompt, err := c.CommandSearch(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, "run: uptime", prompt)
	}
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, c.PromptCacheStats().Hits)
}
