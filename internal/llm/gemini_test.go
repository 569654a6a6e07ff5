package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type":        "object",
		"description": "recommendations",
		"properties": map[string]any{
			"roles": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role_id": map[string]any{"type": "string"},
						"level":   map[string]any{"type": "string", "enum": []string{"entry", "senior"}},
						"score":   map[string]any{"type": "integer"},
					},
					"required":             []any{"role_id"},
					"additionalProperties": false,
				},
			},
		},
		"required": []any{"roles"},
	}

	s := geminiSchema(def)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, "recommendations", s.Description)
	assert.Equal(t, []string{"roles"}, s.Required)

	roles := s.Properties["roles"]
	require.NotNil(t, roles)
	assert.Equal(t, genai.TypeArray, roles.Type)

	item := roles.Items
	require.NotNil(t, item)
	assert.Equal(t, []string{"role_id"}, item.Required)
	assert.Equal(t, genai.TypeInteger, item.Properties["score"].Type)
	assert.Equal(t, []string{"entry", "senior"}, item.Properties["level"].Enum)
}

func TestGeminiSchema_UnknownTypeIsString(t *testing.T) {
	s := geminiSchema(map[string]any{"type": "null"})
	assert.Equal(t, genai.TypeString, s.Type)
	assert.Nil(t, s.Properties)
}

func TestNewGeminiProvider(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), GeminiConfig{})
	assert.Error(t, err)

	p, err := NewGeminiProvider(context.Background(), GeminiConfig{APIKey: "k", Model: "gemini-flash"})
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", p.ModelID())
}

func TestLookupCost_FriendlyGeminiName(t *testing.T) {
	c := LookupCost("gemini-pro")
	require.NotNil(t, c)
	assert.InDelta(t, 1.25, c.InputPerMTok, 1e-9)
}
