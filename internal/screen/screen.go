// Package screen defines what the router hosts and how screens talk to the
// session machine.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/careerpath/advisor/internal/session"
	"github.com/careerpath/advisor/internal/ui/layout"
)

// Screen is one view in the router. Screens never change the funnel step
// themselves; they Emit events and the root model applies them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the area between header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens that list their keys in the
// footer and the help overlay.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EventMsg carries a session event up to the root model.
type EventMsg struct {
	Event session.Event
}

// Emit wraps ev in a command.
func Emit(ev session.Event) tea.Cmd {
	return func() tea.Msg { return EventMsg{Event: ev} }
}

// RejectedMsg tells the active screen the machine refused Event. The step
// is unchanged and the screen keeps its state.
type RejectedMsg struct {
	Event session.Event
	Err   error
}
