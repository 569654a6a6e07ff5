package recommend

import "github.com/careerpath/advisor/internal/llm"

// RecommendationSchema defines the JSON schema for role recommendations.
var RecommendationSchema = &llm.Schema{
	Name:        "role-recommendations",
	Description: "Ranked career roles that fit the user's quiz answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"roles": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"role_id": map[string]any{
							"type":        "string",
							"description": "Stable kebab-case identifier, e.g. data-analyst",
						},
						"role_name": map[string]any{
							"type":        "string",
							"description": "Human-readable role title",
						},
						"summary": map[string]any{
							"type":        "string",
							"description": "2-3 sentences on why this role fits the user",
						},
					},
					"required":             []any{"role_id", "role_name", "summary"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"roles"},
		"additionalProperties": false,
	},
}
