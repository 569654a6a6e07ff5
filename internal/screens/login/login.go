// Package login is the sign-in view: name, email and an optional password.
package login

import (
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	authn "github.com/careerpath/advisor/internal/login"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/components"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// Options selects which fields the form shows.
type Options struct {
	// Validator decides which fields are shown: name for sign-up,
	// password when required.
	Validator authn.Validator
	// Email prefills the email field.
	Email string
}

const (
	fieldName = iota
	fieldEmail
	fieldPassword
)

// LoginScreen collects identity input and submits it as a LoginSubmitted event.
type LoginScreen struct {
	fields  []components.TextInput
	kinds   []int
	focus   int
	message string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates the login form.
func New(opts Options) *LoginScreen {
	s := &LoginScreen{}

	nameLabel := "Name"
	if opts.Validator.Mode == authn.ModeLogin {
		nameLabel = "Name (optional)"
	}
	s.add(fieldName, components.NewTextInput(nameLabel, "Ada Lovelace", 64))

	email := components.NewTextInput("Email", "you@example.com", 254)
	email.SetValue(opts.Email)
	s.add(fieldEmail, email)

	if opts.Validator.RequirePassword {
		s.add(fieldPassword, components.NewPasswordInput("Password"))
	}
	return s
}

func (s *LoginScreen) add(kind int, in components.TextInput) {
	s.fields = append(s.fields, in)
	s.kinds = append(s.kinds, kind)
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.fields[s.focus].Focus()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.RejectedMsg:
		var verr *authn.ValidationError
		if errors.As(msg.Err, &verr) {
			s.message = verr.Message()
			return s, s.focusKind(fieldFor(verr.Kind))
		}
		s.message = "Something went wrong, please try again"
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % len(s.fields))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus - 1 + len(s.fields)) % len(s.fields))
		case "enter":
			if s.focus < len(s.fields)-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s, screen.Emit(s.event())
		}
	}

	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) event() session.LoginSubmitted {
	var ev session.LoginSubmitted
	for i, f := range s.fields {
		switch s.kinds[i] {
		case fieldName:
			ev.Name = f.Value()
		case fieldEmail:
			ev.Email = f.Value()
		case fieldPassword:
			ev.Password = f.Value()
		}
	}
	return ev
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.fields[s.focus].Blur()
	s.focus = i
	return s.fields[s.focus].Focus()
}

func (s *LoginScreen) focusKind(kind int) tea.Cmd {
	for i, k := range s.kinds {
		if k == kind {
			return s.setFocus(i)
		}
	}
	return nil
}

func fieldFor(k authn.Kind) int {
	switch k {
	case authn.MissingName:
		return fieldName
	case authn.MissingPassword:
		return fieldPassword
	default:
		return fieldEmail
	}
}

// Message returns the inline validation message, if any.
func (s *LoginScreen) Message() string {
	return s.message
}

func (s *LoginScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Find the career that fits you"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render("Sign in to start your assessment"))
	b.WriteString("\n\n")

	for _, f := range s.fields {
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}

	if s.message != "" {
		b.WriteString(theme.ErrorText.Render(s.message))
		b.WriteString("\n")
	}

	card := theme.Card.Width(min(width-4, 60)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
