package note_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NethermindEth/amanti/pkg/amanti/note"
)

func TestOpenAiGenerator_Complete(t *testing.T) {
	t.Run("returns first choice", func(t *testing.T) {
		var gotReq map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": "chatcmpl-1",
				"object": "chat.completion",
				"created": 1,
				"model": "test-model",
				"choices": [{"index": 0, "message": {"role": "assistant", "content": " Be mine. "}, "finish_reason": "stop"}]
			}`))
		}))
		defer server.Close()

		generator := note.NewOpenAiGenerator("test-key", "test-model", server.URL)
		got, err := generator.Complete(context.Background(), "a prompt")
		require.NoError(t, err)
		assert.Equal(t, " Be mine. ", got)

		assert.Equal(t, "test-model", gotReq["model"])
		messages, ok := gotReq["messages"].([]interface{})
		require.True(t, ok)
		require.Len(t, messages, 1)
		assert.Equal(t, "a prompt", messages[0].(map[string]interface{})["content"])
	})

	t.Run("quota error", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error": {"message": "quota exceeded", "type": "insufficient_quota"}}`))
		}))
		defer server.Close()

		generator := note.NewOpenAiGenerator("test-key", "test-model", server.URL)
		_, err := generator.Complete(context.Background(), "a prompt")
		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`))
		}))
		defer server.Close()

		generator := note.NewOpenAiGenerator("test-key", "test-model", server.URL)
		_, err := generator.Complete(context.Background(), "a prompt")
		assert.Error(t, err)
	})

	t.Run("default model", func(t *testing.T) {
		generator := note.NewOpenAiGenerator("test-key", "", "")
		assert.Equal(t, note.DefaultModel, generator.Model())
	})
}
