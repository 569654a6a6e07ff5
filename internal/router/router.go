// Package router holds the screen shown for the current funnel step plus
// any overlays stacked on it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/careerpath/advisor/internal/screen"
)

// PushScreenMsg asks the router to open an overlay.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg asks the router to close the top overlay.
type PopScreenMsg struct{}

// ReplaceScreenMsg asks the router to swap the top screen in place.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// Router owns one base screen and a stack of overlays above it.
//
// Key presses go only to the top screen. Every other message also reaches
// the base, so a request the base started keeps running while an overlay
// such as help is open.
type Router struct {
	base     screen.Screen
	overlays []screen.Screen
}

// New creates a router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{base: initial}
}

// Push opens s above the current screen and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.overlays = append(r.overlays, s)
	return s.Init()
}

// Pop closes the top overlay. The base is never popped.
func (r *Router) Pop() tea.Cmd {
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1] = nil
		r.overlays = r.overlays[:n-1]
	}
	return nil
}

// Replace swaps the top screen, overlay or base, and runs its Init.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if n := len(r.overlays); n > 0 {
		r.overlays[n-1] = s
	} else {
		r.base = s
	}
	return s.Init()
}

// Reset closes all overlays and makes s the base.
func (r *Router) Reset(s screen.Screen) tea.Cmd {
	clear(r.overlays)
	r.overlays = r.overlays[:0]
	r.base = s
	return s.Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	if n := len(r.overlays); n > 0 {
		return r.overlays[n-1]
	}
	return r.base
}

// Base returns the screen under any overlays.
func (r *Router) Base() screen.Screen {
	return r.base
}

// Depth counts the base plus open overlays.
func (r *Router) Depth() int {
	if r.base == nil {
		return len(r.overlays)
	}
	return 1 + len(r.overlays)
}

// Update applies navigation messages and forwards everything else.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	n := len(r.overlays)
	if n == 0 {
		if r.base == nil {
			return nil
		}
		var cmd tea.Cmd
		r.base, cmd = r.base.Update(msg)
		return cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	r.overlays[n-1], cmd = r.overlays[n-1].Update(msg)
	cmds = append(cmds, cmd)

	if _, isKey := msg.(tea.KeyMsg); !isKey && r.base != nil {
		r.base, cmd = r.base.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	if a := r.Active(); a != nil {
		return a.View(width, height)
	}
	return ""
}
