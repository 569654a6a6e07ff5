package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/careerpath/advisor/internal/llm"
)

// Purpose labels recommendation requests in the LLM event log.
const Purpose = "role-recommendation"

// ErrNoRecommendations is returned when a recommender produced nothing usable.
var ErrNoRecommendations = errors.New("no usable recommendations")

// LLMRecommender asks an LLM provider for recommendations.
type LLMRecommender struct {
	provider llm.Provider
	cfg      Config
}

// NewLLMRecommender creates an LLM-backed recommender.
func NewLLMRecommender(provider llm.Provider, cfg Config) *LLMRecommender {
	if cfg.Count < 1 {
		cfg.Count = DefaultConfig().Count
	}
	return &LLMRecommender{provider: provider, cfg: cfg}
}

type recommendationsOutput struct {
	Roles []roleOutput `json:"roles"`
}

type roleOutput struct {
	RoleID   string `json:"role_id"`
	RoleName string `json:"role_name"`
	Summary  string `json:"summary"`
}

func (r *LLMRecommender) Recommend(ctx context.Context, in Input) ([]Recommendation, error) {
	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, r.cfg.Count)},
		},
		Schema:      RecommendationSchema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		Purpose:     Purpose,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("role recommendation: %w", err)
	}

	var out recommendationsOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse recommendation response: %w", err)
	}

	var recs []Recommendation
	seen := make(map[string]bool)
	for _, o := range out.Roles {
		id := strings.TrimSpace(o.RoleID)
		name := strings.TrimSpace(o.RoleName)
		if id == "" || name == "" || seen[id] {
			continue
		}
		seen[id] = true
		recs = append(recs, Recommendation{
			RoleID:   id,
			RoleName: name,
			Summary:  strings.TrimSpace(o.Summary),
			Rank:     len(recs) + 1,
		})
		if len(recs) == r.cfg.Count {
			break
		}
	}
	if len(recs) == 0 {
		return nil, ErrNoRecommendations
	}
	return recs, nil
}
