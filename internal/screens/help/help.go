// Package help is the keyboard reference overlay.
package help

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/router"
	"github.com/careerpath/advisor/internal/screen"
	"github.com/careerpath/advisor/internal/ui/layout"
	"github.com/careerpath/advisor/internal/ui/theme"
)

// Bindings shown on every screen, ahead of the screen's own hints.
var globalBindings = []layout.KeyHint{
	{Key: "F1", Description: "Show or hide this help"},
	{Key: "Ctrl+L", Description: "Log out and clear saved data"},
	{Key: "Ctrl+C", Description: "Quit"},
}

// HelpScreen lists global bindings plus the hints of the screen beneath it.
type HelpScreen struct {
	context string
	hints   []layout.KeyHint
}

var _ screen.Screen = (*HelpScreen)(nil)

// New creates the overlay for the screen it covers.
func New(under screen.Screen) *HelpScreen {
	h := &HelpScreen{}
	if under != nil {
		h.context = under.Title()
		if p, ok := under.(screen.KeyHintProvider); ok {
			h.hints = p.KeyHints()
		}
	}
	return h
}

func (h *HelpScreen) Init() tea.Cmd {
	return nil
}

func (h *HelpScreen) Title() string {
	return "Help"
}

func (h *HelpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc", "f1", "q", "enter":
			return h, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return h, nil
}

func (h *HelpScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Keyboard help"))
	b.WriteString("\n\n")
	writeSection(&b, "Everywhere", globalBindings)
	if len(h.hints) > 0 {
		b.WriteString("\n")
		writeSection(&b, h.context, h.hints)
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press Esc to close"))

	card := theme.Card.Width(min(width-4, 60)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func writeSection(b *strings.Builder, title string, hints []layout.KeyHint) {
	b.WriteString(theme.Label.Render(title))
	b.WriteString("\n")
	for _, h := range hints {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Description))
	}
}
