// Package quiz presents the psychology questions one at a time.
package quiz

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	qz "github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/components"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// QuizScreen records one answer per question and reports the full set when
// the last question is answered.
type QuizScreen struct {
	questions []qz.Question
	agg       *qz.Aggregator
	index     int
	choice    components.Choice
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New creates the quiz view. seed holds previously saved answers, which are
// shown preselected.
func New(questions []qz.Question, seed qz.Answers) *QuizScreen {
	s := &QuizScreen{
		questions: questions,
		agg:       qz.NewAggregator(seed),
	}
	s.load(0)
	return s
}

func (s *QuizScreen) load(i int) {
	s.index = i
	if i >= len(s.questions) {
		return
	}
	q := s.questions[i]
	s.choice = components.NewChoice(q.Text, q.Options, q.MultiSelect)
	if prev, ok := s.agg.Answer(i); ok {
		s.choice = s.choice.Preselect(prev.Values()...)
	}
}

func (s *QuizScreen) Init() tea.Cmd {
	return nil
}

func (s *QuizScreen) Title() string {
	return "Psychology quiz"
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Move"}}
	if s.current().MultiSelect {
		hints = append(hints, layout.KeyHint{Key: "Space", Description: "Toggle"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Answer"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *QuizScreen) current() qz.Question {
	if s.index < len(s.questions) {
		return s.questions[s.index]
	}
	return qz.Question{}
}

// Index returns the position of the question on screen.
func (s *QuizScreen) Index() int {
	return s.index
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		if s.index > 0 {
			s.load(s.index - 1)
			return s, nil
		}
		return s, screen.Emit(session.Back{})
	}

	if len(s.questions) == 0 {
		if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
			return s, screen.Emit(session.QuizCompleted{Answers: s.agg.Finalize()})
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.choice, cmd = s.choice.Update(msg)
	if !s.choice.Done {
		return s, cmd
	}

	sel := s.choice.Selected()
	answer := qz.Multi(sel...)
	if !s.current().MultiSelect {
		answer = qz.Single(sel[0])
	}
	if err := s.agg.Record(s.index, answer); err != nil {
		return s, nil
	}

	if s.index == len(s.questions)-1 {
		s.choice.Done = false
		return s, screen.Emit(session.QuizCompleted{Answers: s.agg.Finalize()})
	}
	s.load(s.index + 1)
	return s, nil
}

func (s *QuizScreen) View(width, height int) string {
	cardWidth := min(width-4, 76)

	var b strings.Builder
	total := len(s.questions)
	bar := components.NewStepProgress(
		fmt.Sprintf("Question %d of %d", min(s.index+1, total), total),
		s.index, total, cardWidth-6,
	)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	if total == 0 {
		b.WriteString(theme.Body.Render("No questions today. Press Enter to see your results."))
	} else {
		b.WriteString(s.choice.View())
		if s.current().MultiSelect && !layout.IsCompactHeight(height) {
			b.WriteString("\n")
			b.WriteString(theme.Hint.Render("Pick as many as you like, then press Enter"))
		}
	}

	card := theme.Card.Width(cardWidth).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
