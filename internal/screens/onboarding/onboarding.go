// Package onboarding asks for language, region and an optional career goal.
package onboarding

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/components"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// Languages offered by the language question.
var Languages = []string{"English", "Hindi", "Kannada", "Tamil", "Telugu", "Marathi", "Bengali"}

const (
	answerYes = "Yes, I have a goal in mind"
	answerNo  = "Not yet"
)

type stage int

const (
	stageLanguage stage = iota
	stageRegion
	stageHasGoal
	stageGoal
)

// OnboardingScreen walks through the onboarding questions one at a time.
type OnboardingScreen struct {
	name     string
	stage    stage
	language components.Choice
	region   components.TextInput
	hasGoal  components.Choice
	goal     components.TextInput
	message  string
}

var _ screen.Screen = (*OnboardingScreen)(nil)
var _ screen.KeyHintProvider = (*OnboardingScreen)(nil)

// New creates the onboarding view, prefilled from a previous answer when
// prev is non-nil. name greets the user.
func New(name string, prev *profile.Onboarding) *OnboardingScreen {
	s := &OnboardingScreen{
		name:     name,
		language: components.NewChoice("Which language do you prefer?", Languages, false),
		region:   components.NewTextInput("Which state or region do you live in?", "Karnataka", 64),
		hasGoal:  components.NewChoice("Do you already have a career goal?", []string{answerYes, answerNo}, false),
		goal:     components.NewTextInput("What is your goal?", "Become a data analyst", 200),
	}
	if prev != nil {
		s.language = s.language.Preselect(prev.Language)
		s.region.SetValue(prev.Region)
		if prev.HasGoal {
			s.hasGoal = s.hasGoal.Preselect(answerYes)
			s.goal.SetValue(prev.Goal)
		} else {
			s.hasGoal = s.hasGoal.Preselect(answerNo)
		}
	}
	return s
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return nil
}

func (s *OnboardingScreen) Title() string {
	return "About you"
}

func (s *OnboardingScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Continue"}}
	if s.stage > stageLanguage {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+L", Description: "Log out"})
}

func (s *OnboardingScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)
	if isKey && kmsg.String() == "esc" {
		if s.stage > stageLanguage {
			s.message = ""
			return s, s.enter(s.stage - 1)
		}
		return s, nil
	}

	var cmd tea.Cmd
	switch s.stage {
	case stageLanguage:
		s.language, cmd = s.language.Update(msg)
		if s.language.Done {
			s.language.Done = false
			return s, s.enter(stageRegion)
		}
	case stageRegion:
		if isKey && kmsg.String() == "enter" {
			if strings.TrimSpace(s.region.Value()) == "" {
				s.message = "Please enter your state or region"
				return s, nil
			}
			s.message = ""
			return s, s.enter(stageHasGoal)
		}
		s.region, cmd = s.region.Update(msg)
	case stageHasGoal:
		s.hasGoal, cmd = s.hasGoal.Update(msg)
		if s.hasGoal.Done {
			s.hasGoal.Done = false
			if s.wantsGoal() {
				return s, s.enter(stageGoal)
			}
			return s, screen.Emit(s.event())
		}
	case stageGoal:
		if isKey && kmsg.String() == "enter" {
			return s, screen.Emit(s.event())
		}
		s.goal, cmd = s.goal.Update(msg)
	}
	return s, cmd
}

func (s *OnboardingScreen) enter(st stage) tea.Cmd {
	s.region.Blur()
	s.goal.Blur()
	s.stage = st
	switch st {
	case stageRegion:
		return s.region.Focus()
	case stageGoal:
		return s.goal.Focus()
	}
	return nil
}

func (s *OnboardingScreen) wantsGoal() bool {
	sel := s.hasGoal.Selected()
	return len(sel) == 1 && sel[0] == answerYes
}

func (s *OnboardingScreen) event() session.OnboardingCompleted {
	o := profile.Onboarding{
		Region:  strings.TrimSpace(s.region.Value()),
		HasGoal: s.wantsGoal(),
	}
	if sel := s.language.Selected(); len(sel) == 1 {
		o.Language = sel[0]
	}
	if o.HasGoal {
		o.Goal = strings.TrimSpace(s.goal.Value())
	}
	return session.OnboardingCompleted{Profile: o}
}

func (s *OnboardingScreen) View(width, height int) string {
	var b strings.Builder
	greeting := "Welcome!"
	if s.name != "" {
		greeting = fmt.Sprintf("Welcome, %s!", s.name)
	}
	b.WriteString(theme.Title.Render(greeting))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Step %d of 4", int(s.stage)+1)))
	b.WriteString("\n\n")

	switch s.stage {
	case stageLanguage:
		b.WriteString(s.language.View())
	case stageRegion:
		b.WriteString(s.region.View())
	case stageHasGoal:
		b.WriteString(s.hasGoal.View())
	case stageGoal:
		b.WriteString(s.goal.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Leave empty if you would rather not say"))
	}

	if s.message != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.message))
	}

	card := theme.Card.Width(min(width-4, 70)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
