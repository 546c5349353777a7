package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpenAICompat_Generate(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		expected   string
		wantErr    error
		expectFail bool
	}{
		{
			name:     "Answer returned",
			status:   http.StatusOK,
			body:     `{"choices":[{"index":0,"message":{"role":"assistant","content":" Tokyo "},"finish_reason":"stop"}]}`,
			expected: "Tokyo",
		},
		{
			name:     "Reasoning stripped",
			status:   http.StatusOK,
			body:     `{"choices":[{"index":0,"message":{"role":"assistant","content":"<think>hmm</think>Tokyo"}}]}`,
			expected: "Tokyo",
		},
		{
			name:    "No choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			wantErr: ErrNoChoices,
		},
		{
			name:    "Blank content",
			status:  http.StatusOK,
			body:    `{"choices":[{"index":0,"message":{"role":"assistant","content":"   "}}]}`,
			wantErr: ErrEmptyResponse,
		},
		{
			name:       "Server error",
			status:     http.StatusInternalServerError,
			body:       `{"error":{"message":"boom","type":"server_error"}}`,
			expectFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotReq map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v1/chat/completions", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				_ = json.NewDecoder(r.Body).Decode(&gotReq)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			temp := float32(0.2)
			model := NewOpenAICompat(srv.URL+"/v1/", "secret", "local-model",
				Parameters{Temperature: &temp}, newTestLogger())

			got, err := model.Generate(context.Background(), "What is the capital of Japan?")

			switch {
			case tt.wantErr != nil:
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			case tt.expectFail:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}

			require.NotNil(t, gotReq)
			assert.Equal(t, "local-model", gotReq["model"])
			assert.InDelta(t, 0.2, gotReq["temperature"], 0.001)
			msgs, ok := gotReq["messages"].([]any)
			require.True(t, ok)
			require.Len(t, msgs, 1)
			assert.Equal(t, "What is the capital of Japan?", msgs[0].(map[string]any)["content"])
		})
	}
}
