// Package session implements the funnel state machine: it decides which step
// is active, applies step completion events, and persists step data through
// the profile store.
//
// A Machine is driven by one event at a time and is not safe for concurrent
// use.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/careerpath/advisor/internal/deeplink"
	"github.com/careerpath/advisor/internal/handoff"
	"github.com/careerpath/advisor/internal/login"
	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/role"
)

// Machine owns the current step and all step-scoped data.
type Machine struct {
	store       *profile.Store
	validator   login.Validator
	navigator   handoff.Navigator
	handoffBase string
	logger      *slog.Logger
	observers   []func(from, to Step)

	step          Step
	intent        deeplink.Intent
	identity      profile.Identity
	authenticated bool
	onboarding    profile.Onboarding
	hasOnboarding bool
	answers       quiz.Answers
	role          role.Selection
	loginErr      *login.ValidationError
	lastHandoff   string
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the machine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithValidator replaces the default sign-up validator.
func WithValidator(v login.Validator) Option {
	return func(m *Machine) { m.validator = v }
}

// WithNavigator sets where StartLearning sends the user.
func WithNavigator(n handoff.Navigator) Option {
	return func(m *Machine) {
		if n != nil {
			m.navigator = n
		}
	}
}

// WithHandoffBase overrides the external assessment path.
func WithHandoffBase(base string) Option {
	return func(m *Machine) {
		if base != "" {
			m.handoffBase = base
		}
	}
}

// WithObserver registers fn to be called after every step change.
func WithObserver(fn func(from, to Step)) Option {
	return func(m *Machine) {
		if fn != nil {
			m.observers = append(m.observers, fn)
		}
	}
}

// New builds a Machine and resolves its initial step from the stored
// identity and the navigation params present at mount.
func New(store *profile.Store, params url.Values, opts ...Option) *Machine {
	if store == nil {
		store = profile.New(nil)
	}
	m := &Machine{
		store:       store,
		validator:   login.DefaultValidator(),
		navigator:   handoff.Discard,
		handoffBase: handoff.DefaultBase,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, o := range opts {
		o(m)
	}
	m.mount(params)
	return m
}

func (m *Machine) mount(params url.Values) {
	m.identity, m.authenticated = m.store.Identity()
	m.intent = deeplink.Resolve(params, m.authenticated)

	switch in := m.intent.(type) {
	case deeplink.ShortcutToRoleDeepDive:
		m.role = in.Role.Normalize()
		m.step = StepRoleDeepDive
	case deeplink.ShortcutToQuiz:
		m.step = StepPsychologyQuiz
	default:
		if m.authenticated {
			m.step = StepOnboarding
		} else {
			m.step = StepLogin
		}
	}

	if m.authenticated {
		m.restore()
	}

	m.logger.Info("session mounted",
		"step", m.step.String(),
		"authenticated", m.authenticated,
		"intent", m.intent.String(),
	)
}

// restore loads onboarding fields and saved answers for an authenticated user.
func (m *Machine) restore() {
	m.onboarding, m.hasOnboarding = m.store.Onboarding()

	blob, ok := m.store.Get(profile.KeyAnswers)
	if !ok || blob == "" {
		return
	}
	answers, err := quiz.Unmarshal(blob)
	if err != nil {
		m.logger.Warn("ignoring stored quiz answers", "error", err)
		return
	}
	m.answers = answers
}

// Dispatch applies ev to the current step. On error the step is unchanged.
func (m *Machine) Dispatch(ev Event) (Step, error) {
	from := m.step
	to, err := Next(from, ev)
	if err != nil {
		m.logger.Debug("event rejected", "step", from.String(), "event", eventName(ev), "error", err)
		return from, err
	}

	switch e := ev.(type) {
	case LoginSubmitted:
		if err := m.applyLogin(e); err != nil {
			return from, err
		}
	case OnboardingCompleted:
		m.applyOnboarding(e.Profile)
	case QuizCompleted:
		if err := m.applyQuiz(e.Answers); err != nil {
			return from, err
		}
	case RoleSelected:
		if !e.Role.Valid() {
			m.logger.Debug("role selection rejected", "role_id", e.Role.ID, "role_name", e.Role.Name)
			return from, ErrInvalidRole
		}
		m.role = e.Role.Normalize()
	case StartLearning:
		m.startLearning()
	case Logout:
		m.logout()
	}

	m.setStep(to)
	return to, nil
}

func (m *Machine) applyLogin(e LoginSubmitted) error {
	id, err := m.validator.Validate(login.Input{
		Name:     e.Name,
		Email:    e.Email,
		Password: e.Password,
	}, m.store.StoredName())
	if err != nil {
		var verr *login.ValidationError
		if errors.As(err, &verr) {
			m.loginErr = verr
		}
		m.logger.Debug("login rejected", "error", err)
		return err
	}
	m.loginErr = nil
	m.store.SaveIdentity(id)
	m.identity = id
	m.authenticated = true
	m.logger.Info("user logged in", "email", id.Email)
	return nil
}

func (m *Machine) applyOnboarding(o profile.Onboarding) {
	if !o.HasGoal {
		o.Goal = ""
	}
	m.store.SaveOnboarding(o)
	m.onboarding = o
	m.hasOnboarding = true
}

func (m *Machine) applyQuiz(answers quiz.Answers) error {
	blob, err := quiz.Marshal(answers)
	if err != nil {
		return fmt.Errorf("serialize quiz answers: %w", err)
	}
	m.store.Set(profile.KeyAnswers, blob)
	m.answers = answers.Clone()
	return nil
}

func (m *Machine) startLearning() {
	dest := handoff.URL(m.handoffBase, m.role)
	m.lastHandoff = dest
	m.logger.Info("handing off to skill assessment", "role_id", m.role.ID, "url", dest)
	m.navigator.Navigate(dest)
}

func (m *Machine) logout() {
	_ = m.store.Clear() // failures are logged by the store
	m.identity = profile.Identity{}
	m.authenticated = false
	m.onboarding = profile.Onboarding{}
	m.hasOnboarding = false
	m.answers = nil
	m.role = role.Selection{}
	m.loginErr = nil
	m.lastHandoff = ""
	m.logger.Info("user logged out")
}

func (m *Machine) setStep(to Step) {
	from := m.step
	m.step = to
	if from == to {
		return
	}
	m.logger.Info("step changed", "from", from.String(), "to", to.String())
	for _, fn := range m.observers {
		fn(from, to)
	}
}

func eventName(ev Event) string {
	if ev == nil {
		return "<nil>"
	}
	return ev.EventName()
}

// Step returns the active step.
func (m *Machine) Step() Step { return m.step }

// Intent returns the deep-link intent resolved at mount.
func (m *Machine) Intent() deeplink.Intent { return m.intent }

// Authenticated reports whether an identity is present.
func (m *Machine) Authenticated() bool { return m.authenticated }

// Identity returns the current identity.
func (m *Machine) Identity() (profile.Identity, bool) { return m.identity, m.authenticated }

// Onboarding returns the onboarding profile, if one has been captured.
func (m *Machine) Onboarding() (profile.Onboarding, bool) { return m.onboarding, m.hasOnboarding }

// Answers returns a copy of the quiz answers.
func (m *Machine) Answers() quiz.Answers { return m.answers.Clone() }

// Role returns the selected role.
func (m *Machine) Role() role.Selection { return m.role }

// LoginError returns the last login validation failure, cleared on success.
func (m *Machine) LoginError() *login.ValidationError { return m.loginErr }

// LastHandoff returns the most recent handoff URL.
func (m *Machine) LastHandoff() string { return m.lastHandoff }
