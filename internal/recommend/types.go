// Package recommend produces ranked career-role recommendations from quiz
// answers. The funnel treats the result as opaque input to the results view.
package recommend

import (
	"context"

	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/role"
)

// Recommendation is one suggested role.
type Recommendation struct {
	RoleID   string
	RoleName string
	// Summary is the persona summary carried into the deep dive.
	Summary string
	// Rank is 1-based; 1 is the best fit.
	Rank int
}

// Selection converts the recommendation into the role the user picks.
func (r Recommendation) Selection() role.Selection {
	return role.Selection{
		ID:             r.RoleID,
		Name:           r.RoleName,
		PersonaContext: r.Summary,
		Rank:           r.Rank,
	}.Normalize()
}

// Input is what a Recommender sees about the user.
type Input struct {
	Answers    quiz.Answers
	Questions  []quiz.Question
	Onboarding profile.Onboarding
	// HasOnboarding is false when onboarding fields were never stored.
	HasOnboarding bool
}

// Recommender ranks roles for a user.
type Recommender interface {
	Recommend(ctx context.Context, in Input) ([]Recommendation, error)
}

// Config holds generation settings for LLM-backed recommendations.
type Config struct {
	Count       int
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Count:       3,
		MaxTokens:   1024,
		Temperature: 0.4,
	}
}
