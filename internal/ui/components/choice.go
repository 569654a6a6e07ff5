package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

// Choice is a question with options. Single-select questions pick the
// highlighted option on enter; multi-select questions toggle options with
// space and confirm with enter.
type Choice struct {
	Question string
	Options  []string
	Multi    bool
	Cursor   int
	checked  map[int]bool
	// Done is set once enter confirms a non-empty selection.
	Done bool
}

// NewChoice creates a choice component with nothing selected.
func NewChoice(question string, options []string, multi bool) Choice {
	return Choice{
		Question: question,
		Options:  options,
		Multi:    multi,
		checked:  make(map[int]bool),
	}
}

// Preselect marks the options matching values as chosen and moves the
// cursor to the first of them.
func (c Choice) Preselect(values ...string) Choice {
	c.checked = make(map[int]bool)
	first := -1
	for _, v := range values {
		for i, opt := range c.Options {
			if opt == v {
				c.checked[i] = true
				if first < 0 || i < first {
					first = i
				}
			}
		}
	}
	if !c.Multi && len(c.checked) > 1 {
		c.checked = map[int]bool{first: true}
	}
	if first >= 0 {
		c.Cursor = first
	}
	return c
}

// Update handles keyboard navigation and selection.
func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Options) == 0 {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Options)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Multi {
			c.checked[c.Cursor] = !c.checked[c.Cursor]
		}
	case "enter":
		if !c.Multi {
			c.checked = map[int]bool{c.Cursor: true}
		}
		c.Done = len(c.Selected()) > 0
	}
	return c, nil
}

// Selected returns the chosen option texts in option order.
func (c Choice) Selected() []string {
	var out []string
	for i, opt := range c.Options {
		if c.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// View renders the question and options.
func (c Choice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(c.Question))
	b.WriteString("\n\n")

	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}
		mark := "( )"
		if c.Multi {
			mark = "[ ]"
		}
		if c.checked[i] {
			if c.Multi {
				mark = "[x]"
			} else {
				mark = "(•)"
			}
		}

		line := fmt.Sprintf("%s%s %s", prefix, mark, opt)
		switch {
		case i == c.Cursor:
			b.WriteString(theme.Selected.Render(line))
		case c.checked[i]:
			b.WriteString(theme.Checked.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
