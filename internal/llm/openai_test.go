package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatReply(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	}
}

// chatServer returns the server URL and a pointer to the last decoded
// request body.
func chatServer(t *testing.T, status int, reply any) (string, *map[string]any) {
	t.Helper()
	var sent map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&sent)
		writeJSON(w, status, reply)
	}))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1", &sent
}

func TestOpenAIProvider_StructuredReply(t *testing.T) {
	url, sent := chatServer(t, http.StatusOK, chatReply(`{"role_id":"ux-designer","score":3}`, "stop"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "hi"}, {Role: RoleAssistant, Content: "hello"}},
		Schema:    pickSchema,
		MaxTokens: 64,
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"role_id":"ux-designer","score":3}`, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)

	msgs, _ := (*sent)["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "assistant", msgs[2].(map[string]any)["role"])

	format, _ := (*sent)["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	schema, _ := format["json_schema"].(map[string]any)
	assert.Equal(t, "test-pick", schema["name"])
	assert.Equal(t, true, schema["strict"])
}

func TestOpenAIProvider_FreeText(t *testing.T) {
	url, sent := chatServer(t, http.StatusOK, chatReply("Data analysis suits you.", "stop"))
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
	require.NoError(t, err)

	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "?"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `"Data analysis suits you."`, string(resp.Content))
	assert.NotContains(t, *sent, "response_format")
}

func TestOpenAIProvider_Errors(t *testing.T) {
	t.Run("length", func(t *testing.T) {
		url, _ := chatServer(t, http.StatusOK, chatReply(`{"role_id":`, "length"))
		p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
		_, err := p.Generate(context.Background(), Request{Schema: pickSchema})
		var tr *TruncatedError
		assert.ErrorAs(t, err, &tr)
	})

	t.Run("no choices", func(t *testing.T) {
		reply := chatReply("", "stop")
		reply["choices"] = []any{}
		url, _ := chatServer(t, http.StatusOK, reply)
		p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
		_, err := p.Generate(context.Background(), Request{})
		var inv *InvalidResponseError
		assert.ErrorAs(t, err, &inv)
	})

	statuses := []struct {
		status int
		target any
	}{
		{http.StatusTooManyRequests, new(*RateLimitError)},
		{http.StatusBadRequest, new(*ClientError)},
		{http.StatusBadGateway, new(*UnavailableError)},
	}
	for _, tt := range statuses {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			url, _ := chatServer(t, tt.status, map[string]any{
				"error": map[string]any{"message": "nope", "type": "server_error"},
			})
			p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", BaseURL: url})
			_, err := p.Generate(context.Background(), Request{})
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestOpenRouterProvider(t *testing.T) {
	_, err := NewOpenRouterProvider(OpenRouterConfig{})
	assert.ErrorContains(t, err, "openrouter API key is required")

	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", p.ModelID())

	url, sent := chatServer(t, http.StatusOK, chatReply(`{"role_id":"nurse"}`, "stop"))
	p, err = NewOpenRouterProvider(OpenRouterConfig{APIKey: "k", Model: "meta-llama/llama-3.1-8b-instruct", BaseURL: url})
	require.NoError(t, err)

	_, err = p.Generate(context.Background(), Request{Schema: pickSchema})
	require.NoError(t, err)
	assert.Equal(t, "meta-llama/llama-3.1-8b-instruct", (*sent)["model"], "slugs are not resolved")
}
