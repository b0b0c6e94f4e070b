package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resilia-ai/backend/internal/domain"
)

func TestAnalyzeEmotionSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/analyze", r.URL.Path)

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "I feel great", payload["message"])

		_ = json.NewEncoder(w).Encode(map[string]string{"emotion": "happy"})
	}))
	defer srv.Close()

	client := NewAIClient(srv.URL, "", "")
	emotion, err := client.AnalyzeEmotion(context.Background(), "I feel great")
	require.NoError(t, err)
	assert.Equal(t, "HAPPY", emotion)
}

func TestAnalyzeEmotionServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewAIClient(srv.URL, "", "")
	_, err := client.AnalyzeEmotion(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestAnalyzeEmotionMissingLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	client := NewAIClient(srv.URL, "", "")
	_, err := client.AnalyzeEmotion(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestAnalyzeEmotionUnreachable(t *testing.T) {
	client := NewAIClient("http://127.0.0.1:1", "", "")
	_, err := client.AnalyzeEmotion(context.Background(), "hello")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGenerateReplySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))

		var payload generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Contents, 1)
		require.Len(t, payload.Contents[0].Parts, 1)
		assert.Contains(t, payload.Contents[0].Parts[0].Text, "The user is feeling: SAD")
		assert.Contains(t, payload.Contents[0].Parts[0].Text, "User: rough week")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": "  That sounds hard.  "}},
				}},
			},
		})
	}))
	defer srv.Close()

	client := NewAIClient("", srv.URL, "secret")
	reply, err := client.GenerateReply(context.Background(), "SAD", "", "rough week")
	require.NoError(t, err)
	assert.Equal(t, "That sounds hard.", reply)
}

func TestGenerateReplyNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
	}))
	defer srv.Close()

	client := NewAIClient("", srv.URL, "")
	reply, err := client.GenerateReply(context.Background(), "SAD", "", "hello")
	require.NoError(t, err)
	assert.Empty(t, reply)
}

func TestGenerateReplyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewAIClient("", srv.URL, "")
	_, err := client.GenerateReply(context.Background(), "SAD", "", "hello")
	require.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

func TestGenerateReplyPriorContextIncluded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Contains(t, payload.Contents[0].Parts[0].Text, "Context: earlier we talked about work")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{
					"parts": []map[string]string{{"text": "ok"}},
				}},
			},
		})
	}))
	defer srv.Close()

	client := NewAIClient("", srv.URL, "")
	_, err := client.GenerateReply(context.Background(), "SAD", "earlier we talked about work", "hello")
	require.NoError(t, err)
}
