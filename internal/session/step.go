package session

import (
	"errors"
	"fmt"

	"github.com/careerpath/advisor/internal/profile"
	"github.com/careerpath/advisor/internal/quiz"
	"github.com/careerpath/advisor/internal/role"
)

// Step is the active stage of the funnel.
type Step int

const (
	StepLogin Step = iota
	StepOnboarding
	StepPsychologyQuiz
	StepResults
	StepRoleDeepDive
)

// Steps lists every step in funnel order.
var Steps = []Step{StepLogin, StepOnboarding, StepPsychologyQuiz, StepResults, StepRoleDeepDive}

func (s Step) String() string {
	switch s {
	case StepLogin:
		return "login"
	case StepOnboarding:
		return "onboarding"
	case StepPsychologyQuiz:
		return "psychology_quiz"
	case StepResults:
		return "results"
	case StepRoleDeepDive:
		return "role_deep_dive"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Event is something a step view reports to the machine.
type Event interface {
	isEvent()
	// EventName identifies the event in logs and errors.
	EventName() string
}

// LoginSubmitted carries the raw login form.
type LoginSubmitted struct {
	Name     string
	Email    string
	Password string
}

// OnboardingCompleted carries the onboarding form.
type OnboardingCompleted struct {
	Profile profile.Onboarding
}

// QuizCompleted carries the finalized quiz answers.
type QuizCompleted struct {
	Answers quiz.Answers
}

// RoleSelected reports the role picked on the results view.
type RoleSelected struct {
	Role role.Selection
}

// Back returns to the previous step.
type Back struct{}

// StartLearning hands off to the external assessment.
type StartLearning struct{}

// Logout clears everything and returns to login.
type Logout struct{}

func (LoginSubmitted) isEvent()      {}
func (OnboardingCompleted) isEvent() {}
func (QuizCompleted) isEvent()       {}
func (RoleSelected) isEvent()        {}
func (Back) isEvent()                {}
func (StartLearning) isEvent()       {}
func (Logout) isEvent()              {}

func (LoginSubmitted) EventName() string      { return "login_submitted" }
func (OnboardingCompleted) EventName() string { return "onboarding_completed" }
func (QuizCompleted) EventName() string       { return "quiz_completed" }
func (RoleSelected) EventName() string        { return "role_selected" }
func (Back) EventName() string                { return "back" }
func (StartLearning) EventName() string       { return "start_learning" }
func (Logout) EventName() string              { return "logout" }

// ErrInvalidTransition is wrapped by TransitionError.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrInvalidRole is returned when a role selection lacks an id or name.
var ErrInvalidRole = errors.New("role selection requires id and name")

// TransitionError reports an event that the current step does not accept.
type TransitionError struct {
	From  Step
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s does not accept %s", ErrInvalidTransition, e.From, e.Event)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// Next is the funnel transition table. It ignores guards and side effects;
// the Machine applies those. StartLearning leaves the step unchanged because
// the handoff happens outside the funnel.
func Next(from Step, ev Event) (Step, error) {
	if _, ok := ev.(Logout); ok {
		return StepLogin, nil
	}

	switch from {
	case StepLogin:
		switch ev.(type) {
		case LoginSubmitted:
			return StepOnboarding, nil
		}
	case StepOnboarding:
		switch ev.(type) {
		case OnboardingCompleted:
			return StepPsychologyQuiz, nil
		}
	case StepPsychologyQuiz:
		switch ev.(type) {
		case QuizCompleted:
			return StepResults, nil
		case Back:
			return StepOnboarding, nil
		}
	case StepResults:
		switch ev.(type) {
		case RoleSelected:
			return StepRoleDeepDive, nil
		case Back:
			return StepPsychologyQuiz, nil
		}
	case StepRoleDeepDive:
		switch ev.(type) {
		case Back:
			return StepResults, nil
		case StartLearning:
			return StepRoleDeepDive, nil
		}
	}

	name := "<nil>"
	if ev != nil {
		name = ev.EventName()
	}
	return from, &TransitionError{From: from, Event: name}
}
