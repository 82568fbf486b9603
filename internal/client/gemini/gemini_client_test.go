package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexus/workspace/internal/client"
	"github.com/nexus/workspace/internal/models"
)

func textResponse(text string) GenerateContentResponse {
	return GenerateContentResponse{Candidates: []Candidate{{Content: Content{Role: "model", Parts: []Part{{Text: text}}}}}}
}

func TestSuggestTasks(t *testing.T) {
	var got GenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(textResponse(`[{"title":"Wireframes","description":"Sketch pages","priority":"High"}]`))
	}))
	defer srv.Close()

	c := NewGeminiClient("secret", "test-model", srv.URL, time.Second)
	suggestions, err := c.SuggestTasks(context.Background(), "A landing page")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Wireframes", suggestions[0].Title)
	assert.Equal(t, models.PriorityHigh, suggestions[0].Priority)

	require.NotNil(t, got.GenerationConfig)
	assert.Equal(t, "application/json", got.GenerationConfig.ResponseMimeType)
	assert.Equal(t, "ARRAY", got.GenerationConfig.ResponseSchema.Type)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "A landing page")
}

func TestSuggestTasksEmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(GenerateContentResponse{})
	}))
	defer srv.Close()

	suggestions, err := NewGeminiClient("k", "", srv.URL, time.Second).SuggestTasks(context.Background(), "x")
	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestChatSendsHistoryAndSystemInstruction(t *testing.T) {
	var got GenerateContentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(textResponse("Happy to help"))
	}))
	defer srv.Close()

	c := NewGeminiClient("k", "", srv.URL, time.Second)
	reply, err := c.Chat(context.Background(), []client.Turn{
		{Role: client.RoleUser, Content: "hi"},
		{Role: client.RoleModel, Content: "hello"},
	}, "what next?")
	require.NoError(t, err)
	assert.Equal(t, "Happy to help", reply)

	require.Len(t, got.Contents, 3)
	assert.Equal(t, client.RoleModel, got.Contents[1].Role)
	assert.Equal(t, "what next?", got.Contents[2].Parts[0].Text)
	require.NotNil(t, got.SystemInstruction)
	assert.Contains(t, got.SystemInstruction.Parts[0].Text, "Nexus AI")
}

func TestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	}))
	defer srv.Close()

	_, err := NewGeminiClient("k", "", srv.URL, time.Second).Chat(context.Background(), nil, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestMissingKey(t *testing.T) {
	c := NewGeminiClient("", "", "http://unused", time.Second)

	_, err := c.Chat(context.Background(), nil, "hi")
	assert.True(t, errors.Is(err, client.ErrNotConfigured))

	_, err = c.SuggestTasks(context.Background(), "x")
	assert.True(t, errors.Is(err, client.ErrNotConfigured))
}
