package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

// Button fires OnPress on enter or space while Active. Note is rendered
// dimmed beside the label.
type Button struct {
	Label   string
	Note    string
	Active  bool
	OnPress func() tea.Cmd
}

// NewButton creates a button.
func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Active: active, OnPress: onPress}
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || !b.Active || b.OnPress == nil {
		return b, nil
	}
	switch kmsg.String() {
	case "enter", "space":
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	style := theme.ButtonInactive
	if b.Active {
		style = theme.ButtonActive
	}
	out := style.Render("  ▸ " + b.Label + " ")
	if b.Note != "" {
		out += " " + theme.Hint.Render(b.Note)
	}
	return out
}
