// Package results shows ranked role recommendations and lets the user pick one.
package results

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/recommend"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/components"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// DefaultTimeout bounds a single recommendation request.
const DefaultTimeout = 30 * time.Second

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// recommendationsMsg carries a finished request. gen ties it to the request
// that produced it so stale replies after a retry are dropped.
type recommendationsMsg struct {
	gen  int
	recs []recommend.Recommendation
	err  error
}

type spinnerTickMsg time.Time

// ResultsScreen fetches recommendations on Init and renders them as a menu.
type ResultsScreen struct {
	recommender recommend.Recommender
	input       recommend.Input
	timeout     time.Duration

	gen     int
	loading bool
	frame   int
	err     error
	recs    []recommend.Recommendation
	menu    components.Menu
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates the results view. A zero timeout means DefaultTimeout.
func New(r recommend.Recommender, in recommend.Input, timeout time.Duration) *ResultsScreen {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &ResultsScreen{recommender: r, input: in, timeout: timeout}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return s.fetch()
}

func (s *ResultsScreen) fetch() tea.Cmd {
	s.gen++
	s.loading = true
	s.err = nil
	gen, r, in, timeout := s.gen, s.recommender, s.input, s.timeout

	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			recs, err := r.Recommend(ctx, in)
			return recommendationsMsg{gen: gen, recs: recs, err: err}
		},
		spinnerTick(),
	)
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *ResultsScreen) Title() string {
	return "Your matches"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.loading:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case s.err != nil:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Move"},
		{Key: "Enter/1-9", Description: "Explore role"},
		{Key: "Esc", Description: "Back"},
	}
}

// Loading reports whether a request is in flight.
func (s *ResultsScreen) Loading() bool { return s.loading }

// Err returns the last request error.
func (s *ResultsScreen) Err() error { return s.err }

// Recommendations returns the roles on screen.
func (s *ResultsScreen) Recommendations() []recommend.Recommendation { return s.recs }

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recommendationsMsg:
		if msg.gen != s.gen {
			return s, nil
		}
		s.loading = false
		if msg.err == nil && len(msg.recs) == 0 {
			msg.err = recommend.ErrNoRecommendations
		}
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.setRecommendations(msg.recs)
		return s, nil

	case spinnerTickMsg:
		if !s.loading {
			return s, nil
		}
		s.frame = (s.frame + 1) % len(spinnerFrames)
		return s, spinnerTick()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, screen.Emit(session.Back{})
		case "r":
			if s.err != nil && !s.loading {
				return s, s.fetch()
			}
			return s, nil
		}
		if s.loading || s.err != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *ResultsScreen) setRecommendations(recs []recommend.Recommendation) {
	s.recs = recs
	items := make([]components.MenuItem, len(recs))
	for i, rec := range recs {
		ev := session.RoleSelected{Role: rec.Selection()}
		items[i] = components.MenuItem{
			Label:  fmt.Sprintf("%d. %s", rec.Rank, rec.RoleName),
			Detail: rec.Summary,
			Action: func() tea.Cmd { return screen.Emit(ev) },
		}
	}
	s.menu = components.NewMenu(items)
}

func (s *ResultsScreen) View(width, height int) string {
	cardWidth := min(width-4, 76)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Roles that fit you"))
	b.WriteString("\n\n")

	switch {
	case s.loading:
		b.WriteString(theme.Body.Render(spinnerFrames[s.frame] + " Matching your answers to careers..."))
	case s.err != nil:
		b.WriteString(theme.ErrorText.Render("We could not load your recommendations."))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(s.err.Error()))
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("Press R to try again."))
	default:
		menu := s.menu
		menu.DetailWidth = cardWidth - 10
		b.WriteString(menu.View())
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
