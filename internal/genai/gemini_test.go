package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGemini(GeminiConfig{})
	assert.Error(t, err)
}

func TestGeminiGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "gemini-1.5-flash:generateContent")
		assert.Equal(t, "k", r.URL.Query().Get("key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Equal(t, "hello", req.Contents[0].Parts[0].Text)

		_ = json.NewEncoder(w).Encode(geminiResponse{
			Candidates: []struct {
				Content geminiContent `json:"content"`
			}{
				{Content: geminiContent{Role: "model", Parts: []geminiPart{{Text: "hi there"}}}},
			},
		})
	}))
	defer srv.Close()

	gen, err := NewGemini(GeminiConfig{APIKey: "k", Endpoint: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	reply, err := gen.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestGeminiGenerateProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	gen, err := NewGemini(GeminiConfig{APIKey: "k", Endpoint: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestGeminiGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	gen, err := NewGemini(GeminiConfig{APIKey: "k", Endpoint: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "hello")
	assert.Error(t, err)
}

func TestDisabledGenerator(t *testing.T) {
	_, err := Disabled{}.Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrDisabled)
}
