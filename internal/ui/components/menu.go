package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

// MenuItem is one selectable row. Detail is shown under the row while it is
// selected.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor. Digits 1-9 activate the matching
// row directly.
type Menu struct {
	Items    []MenuItem
	Selected int

	// DetailWidth wraps Detail text. Zero leaves it unwrapped.
	DetailWidth int
}

// NewMenu selects the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	if i, ok := m.step(-1, 1); ok {
		m.Selected = i
	}
	return m
}

// step finds the next enabled index after from in direction dir.
func (m Menu) step(from, dir int) (int, bool) {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			return i, true
		}
	}
	return from, false
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.Selected, _ = m.step(m.Selected, -1)
	case "down", "j":
		m.Selected, _ = m.step(m.Selected, 1)
	case "home":
		m.Selected, _ = m.step(-1, 1)
	case "end":
		m.Selected, _ = m.step(len(m.Items), -1)
	case "enter":
		return m, m.activate(m.Selected)
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			i := int(k[0] - '1')
			if i < len(m.Items) && !m.Items[i].Disabled {
				m.Selected = i
				return m, m.activate(i)
			}
		}
	}
	return m, nil
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

var (
	menuSelected = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	menuNormal   = lipgloss.NewStyle().Foreground(theme.Text)
	menuDisabled = lipgloss.NewStyle().Foreground(theme.TextDim)
	menuDetail   = lipgloss.NewStyle().Foreground(theme.TextDim).PaddingLeft(4)
)

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(menuSelected.Render("  ▸ " + item.Label))
		case item.Disabled:
			b.WriteString(menuDisabled.Render("    " + item.Label))
		default:
			b.WriteString(menuNormal.Render("    " + item.Label))
		}
		b.WriteString("\n")

		if i == m.Selected && item.Detail != "" {
			style := menuDetail
			if m.DetailWidth > 0 {
				style = style.Width(m.DetailWidth)
			}
			b.WriteString(style.Render(item.Detail))
			b.WriteString("\n")
		}
	}
	return b.String()
}
