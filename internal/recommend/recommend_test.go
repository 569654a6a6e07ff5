package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerpath/advisor/internal/llm"
	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
)

func sampleInput() Input {
	return Input{
		Answers: quiz.Answers{
			0: quiz.Single("The data I already have"),
			1: quiz.Multi("Solving puzzles", "Writing"),
			4: quiz.Multi("Mathematics", "Economics"),
		},
		Questions:     quiz.Questions(),
		Onboarding:    profile.Onboarding{Language: "en", Region: "KA", HasGoal: true, Goal: "switch careers"},
		HasOnboarding: true,
	}
}

func TestLLMRecommender(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"roles":[
		{"role_id":"data-analyst","role_name":"Data Analyst","summary":" You like data. "},
		{"role_id":"","role_name":"Nameless","summary":"skip"},
		{"role_id":"data-analyst","role_name":"Duplicate","summary":"skip"},
		{"role_id":"actuary","role_name":"Actuary","summary":"Risk and numbers."}
	]}`)})

	r := NewLLMRecommender(mock, DefaultConfig())
	recs, err := r.Recommend(context.Background(), sampleInput())
	require.NoError(t, err)

	require.Len(t, recs, 2)
	assert.Equal(t, Recommendation{RoleID: "data-analyst", RoleName: "Data Analyst", Summary: "You like data.", Rank: 1}, recs[0])
	assert.Equal(t, "actuary", recs[1].RoleID)
	assert.Equal(t, 2, recs[1].Rank)

	require.Len(t, mock.Calls(), 1)
	call := mock.Calls()[0]
	assert.Equal(t, RecommendationSchema, call.Schema)
	assert.Equal(t, Purpose, call.Purpose)
	assert.Contains(t, call.Messages[0].Content, "Stated goal: switch careers")
	assert.Contains(t, call.Messages[0].Content, "Solving puzzles, Writing")
	assert.Contains(t, call.Messages[0].Content, "Suggest exactly 3 roles")
}

func TestLLMRecommender_Errors(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.UnavailableError{}},
		llm.MockResponse{Content: json.RawMessage(`{"roles":[]}`)},
	)
	r := NewLLMRecommender(mock, Config{})

	_, err := r.Recommend(context.Background(), Input{})
	var unavail *llm.UnavailableError
	assert.True(t, errors.As(err, &unavail))

	_, err = r.Recommend(context.Background(), Input{})
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestStatic_RanksBySignals(t *testing.T) {
	recs, err := NewStatic().Recommend(context.Background(), sampleInput())
	require.NoError(t, err)

	require.Len(t, recs, 3)
	assert.Equal(t, "data-analyst", recs[0].RoleID)
	for i, r := range recs {
		assert.Equal(t, i+1, r.Rank)
		assert.True(t, r.Selection().Valid())
	}
}

func TestStatic_NoAnswersKeepsCatalogOrder(t *testing.T) {
	s := &Static{Catalog: defaultCatalog}
	recs, err := s.Recommend(context.Background(), Input{})
	require.NoError(t, err)
	require.Len(t, recs, len(defaultCatalog))
	for i, r := range recs {
		assert.Equal(t, defaultCatalog[i].ID, r.RoleID)
	}

	_, err = (&Static{}).Recommend(context.Background(), Input{})
	assert.ErrorIs(t, err, ErrNoRecommendations)
}

func TestWithFallback(t *testing.T) {
	failing := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	rec := New(failing, DefaultConfig(), nil)

	recs, err := rec.Recommend(context.Background(), sampleInput())
	require.NoError(t, err)
	assert.Equal(t, "data-analyst", recs[0].RoleID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	canceled := New(llm.NewMockProvider(llm.MockResponse{Err: context.Canceled}), DefaultConfig(), nil)
	_, err = canceled.Recommend(ctx, sampleInput())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_WithoutProviderIsStatic(t *testing.T) {
	rec := New(nil, Config{Count: 2}, nil)
	recs, err := rec.Recommend(context.Background(), Input{})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestRecommendationSelection(t *testing.T) {
	sel := Recommendation{RoleID: "x", RoleName: "X", Summary: "s", Rank: 0}.Selection()
	assert.Equal(t, 1, sel.Rank)
	assert.Equal(t, "s", sel.PersonaContext)
}
