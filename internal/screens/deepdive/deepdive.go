// Package deepdive describes the selected role and offers the handoff to the
// skill assessment.
package deepdive

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/handoff"
	"github.com/careerpath/advisor/internal/role"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/components"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// DeepDiveScreen shows one role and the Start learning action.
type DeepDiveScreen struct {
	role  role.Selection
	url   string
	start components.Button
}

var _ screen.Screen = (*DeepDiveScreen)(nil)
var _ screen.KeyHintProvider = (*DeepDiveScreen)(nil)

// New creates the deep-dive view. base is the handoff path.
func New(sel role.Selection, base string) *DeepDiveScreen {
	start := components.NewButton("Start learning", true, func() tea.Cmd {
		return screen.Emit(session.StartLearning{})
	})
	start.Note = "opens the skill assessment"
	return &DeepDiveScreen{
		role:  sel,
		url:   handoff.URL(base, sel),
		start: start,
	}
}

func (s *DeepDiveScreen) Init() tea.Cmd {
	return nil
}

func (s *DeepDiveScreen) Title() string {
	return s.role.Name
}

func (s *DeepDiveScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start learning"},
		{Key: "Esc", Description: "Back to results"},
	}
}

func (s *DeepDiveScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "esc" {
			return s, screen.Emit(session.Back{})
		}
	}
	var cmd tea.Cmd
	s.start, cmd = s.start.Update(msg)
	return s, cmd
}

func (s *DeepDiveScreen) View(width, height int) string {
	cardWidth := min(width-4, 76)

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.role.Name))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Match #%d", s.role.Rank)))
	b.WriteString("\n\n")

	if s.role.PersonaContext != "" {
		b.WriteString(theme.Label.Render("Why it fits you"))
		b.WriteString("\n")
		b.WriteString(theme.Body.Width(cardWidth - 6).Render(s.role.PersonaContext))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Label.Render("Next step"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render("Take the skill assessment to see where you stand."))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(s.url))
	b.WriteString("\n\n")

	b.WriteString(s.start.View())

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
