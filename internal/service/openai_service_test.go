package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/veen-app/veen-api/internal/config"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := NewOpenAIService(&config.OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o-mini", BaseURL: srv.URL + "/"})
	require.NoError(t, err)
	return svc
}

func TestNewOpenAIService_RequiresKey(t *testing.T) {
	_, err := NewOpenAIService(&config.OpenAIConfig{})
	assert.Error(t, err)
}

func TestOpenAIService_GenerateJSON(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		raw, _ := json.Marshal(body)
		assert.Equal(t, "gpt-4o-mini", gjson.GetBytes(raw, "model").String())
		assert.Equal(t, "json_object", gjson.GetBytes(raw, "response_format.type").String())
		assert.Equal(t, "system", gjson.GetBytes(raw, "messages.0.role").String())
		assert.Equal(t, "tailor this", gjson.GetBytes(raw, "messages.1.content").String())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"summary\":\"done\"}"}}]}`))
	})

	text, err := svc.GenerateJSON(context.Background(), "be precise", "tailor this")

	require.NoError(t, err)
	assert.Equal(t, `{"summary":"done"}`, text)
}

func TestOpenAIService_StatusError(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached"}}`))
	})

	_, err := svc.GenerateJSON(context.Background(), "", "prompt")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	assert.Equal(t, "Rate limit reached", statusErr.Message)
	assert.True(t, IsRateLimited(err))
}

func TestOpenAIService_EmptyContent(t *testing.T) {
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := svc.GenerateJSON(context.Background(), "", "prompt")

	assert.ErrorIs(t, err, ErrNoStructuredContent)
}

func TestOpenAIService_RetriedOnlyOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	svc := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if n <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error":{"message":"slow down"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	})
	policy := DefaultRetryPolicy()
	policy.BaseDelay = time.Millisecond

	text, err := Retry(context.Background(), policy, svc.Name(), func(ctx context.Context) (string, error) {
		return svc.GenerateJSON(ctx, "", "prompt")
	})

	require.NoError(t, err)
	assert.Equal(t, "{}", text)
	assert.Equal(t, int32(3), calls.Load())
}
