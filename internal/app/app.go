// Package app is the root Bubble Tea model. It owns the session machine,
// maps its step to a screen, and routes screen events back into it.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/login"
	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/recommend"
	"github.com/careerpath/advisor/internal/router"
	"github.com/careerpath/advisor/internal/screen"
	deepdivescreen "github.com/careerpath/advisor/internal/screens/deepdive"
	helpscreen "github.com/careerpath/advisor/internal/screens/help"
	loginscreen "github.com/careerpath/advisor/internal/screens/login"
	onboardingscreen "github.com/careerpath/advisor/internal/screens/onboarding"
	quizscreen "github.com/careerpath/advisor/internal/screens/quiz"
	resultsscreen "github.com/careerpath/advisor/internal/screens/results"
	welcomescreen "github.com/careerpath/advisor/internal/screens/welcome"
	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/layout"
)

// Options wires the root model. Validator must match the machine's so the
// login form shows the fields the machine checks. Timeout bounds one
// recommendation request. Splash shows the welcome animation before login.
type Options struct {
	Machine     *session.Machine
	Recommender recommend.Recommender
	Validator   login.Validator
	Questions   []quiz.Question
	HandoffBase string
	Timeout     time.Duration
	Splash      bool
	Logger      *slog.Logger
}

// breadcrumb names each session.Step in funnel order.
var breadcrumb = []string{"Sign in", "About you", "Quiz", "Matches", "Role"}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts    Options
	machine *session.Machine
	router  *router.Router
	logger  *slog.Logger
	width   int
	height  int

	// handoff is set once StartLearning succeeds; the program quits then.
	handoff string
}

// newAppModel creates the root model showing the machine's current step.
func newAppModel(opts Options) AppModel {
	if opts.Recommender == nil {
		opts.Recommender = recommend.NewStatic()
	}
	if opts.Questions == nil {
		opts.Questions = quiz.Questions()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m := AppModel{
		opts:    opts,
		machine: opts.Machine,
		logger:  logger,
	}
	first := m.screenFor(m.machine.Step())
	if opts.Splash && m.machine.Step() == session.StepLogin {
		first = welcomescreen.New(func() screen.Screen { return m.screenFor(session.StepLogin) })
	}
	m.router = router.New(first)
	return m
}

// screenFor builds the view for step from the machine's current data.
func (m AppModel) screenFor(step session.Step) screen.Screen {
	switch step {
	case session.StepOnboarding:
		id, _ := m.machine.Identity()
		var prev *profile.Onboarding
		if o, ok := m.machine.Onboarding(); ok {
			prev = &o
		}
		return onboardingscreen.New(id.DisplayName, prev)
	case session.StepPsychologyQuiz:
		return quizscreen.New(m.opts.Questions, m.machine.Answers())
	case session.StepResults:
		o, hasOnboarding := m.machine.Onboarding()
		return resultsscreen.New(m.opts.Recommender, recommend.Input{
			Answers:       m.machine.Answers(),
			Questions:     m.opts.Questions,
			Onboarding:    o,
			HasOnboarding: hasOnboarding,
		}, m.opts.Timeout)
	case session.StepRoleDeepDive:
		return deepdivescreen.New(m.machine.Role(), m.opts.HandoffBase)
	default:
		id, _ := m.machine.Identity()
		return loginscreen.New(loginscreen.Options{
			Validator: m.opts.Validator,
			Email:     id.Email,
		})
	}
}

// Handoff returns the URL the user was sent to, or "" if they never left
// the funnel.
func (m AppModel) Handoff() string {
	return m.handoff
}

func (m AppModel) Init() tea.Cmd {
	if a := m.router.Active(); a != nil {
		return a.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+l":
			if m.machine.Authenticated() {
				return m.dispatch(session.Logout{})
			}
			return m, nil
		case "f1":
			if m.router.Depth() == 1 {
				return m, m.router.Push(helpscreen.New(m.router.Active()))
			}
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}

	case screen.EventMsg:
		return m.dispatch(msg.Event)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	step, err := m.machine.Dispatch(ev)
	if err != nil {
		m.logger.Debug("screen event rejected", "event", ev.EventName(), "step", step.String(), "error", err)
		return m, m.router.Update(screen.RejectedMsg{Event: ev, Err: err})
	}
	if _, ok := ev.(session.StartLearning); ok {
		m.handoff = m.machine.LastHandoff()
		return m, tea.Quit
	}
	return m, m.router.Reset(m.screenFor(step))
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	var hints []layout.KeyHint
	if active != nil {
		title = active.Title()
		if p, ok := active.(screen.KeyHintProvider); ok {
			hints = p.KeyHints()
		}
	}
	if m.router.Depth() == 1 {
		hints = append(hints, layout.KeyHint{Key: "F1", Description: "Help"})
	}

	user := ""
	if id, ok := m.machine.Identity(); ok {
		user = id.DisplayName
		if user == "" {
			user = id.Email
		}
	}

	header := layout.RenderHeader(layout.Header{
		Title:   title,
		User:    user,
		Steps:   breadcrumb,
		Current: int(m.machine.Step()),
	}, m.width)
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits or
// hands off. It returns the handoff URL, if any.
func Run(opts Options) (string, error) {
	p := tea.NewProgram(newAppModel(opts))
	final, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return "", err
	}
	if m, ok := final.(AppModel); ok {
		return m.Handoff(), nil
	}
	return "", nil
}
