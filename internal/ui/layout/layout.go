// Package layout draws the frame around every screen: header with the
// funnel breadcrumb, content area and key-hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this height screens drop secondary hints and spacing.
	CompactHeightThreshold = 30
)

const brand = "Career Advisor"

// KeyHint is one footer entry.
type KeyHint struct {
	Key         string
	Description string
}

// Header describes the top bar. Steps is the funnel breadcrumb; Current
// indexes it, or is -1 to hide it. User is empty before sign-in.
type Header struct {
	Title   string
	User    string
	Steps   []string
	Current int
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"Terminal too small\n\nCareer Advisor needs at least %d x %d.\nCurrent size: %d x %d",
			MinWidth, MinHeight, width, height,
		))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader draws the brand on the left, the title in the middle and the
// signed-in user on the right, with the breadcrumb on a second line when
// Current is in range.
func RenderHeader(h Header, width int) string {
	inner := max(width-4, 0)

	left := theme.Brand.Render("  " + brand)
	center := theme.Body.Render(h.Title)
	right := ""
	if h.User != "" {
		user := truncate(h.User, max(inner/4, 8))
		right = theme.UserBadge.Render("● " + user)
	}

	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	line := left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right

	if crumbs := RenderBreadcrumb(h.Steps, h.Current); crumbs != "" {
		line += "\n" + lipgloss.PlaceHorizontal(inner, lipgloss.Center, crumbs)
	}
	return bar.Width(width).Render(line)
}

// RenderBreadcrumb marks finished, current and upcoming steps. It returns ""
// when current is out of range.
func RenderBreadcrumb(steps []string, current int) string {
	if current < 0 || current >= len(steps) {
		return ""
	}
	parts := make([]string, len(steps))
	for i, s := range steps {
		switch {
		case i < current:
			parts[i] = theme.StepDone.Render("✓ " + s)
		case i == current:
			parts[i] = theme.StepCurrent.Render("● " + s)
		default:
			parts[i] = theme.StepTodo.Render("○ " + s)
		}
	}
	return strings.Join(parts, theme.StepTodo.Render("  ›  "))
}

// RenderFooter lists key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	inner := max(width-4, 0)
	const sep = "   "

	var b strings.Builder
	b.WriteString("  ")
	used := 2
	for i, h := range hints {
		part := theme.HintKey.Render(h.Key) + " " + theme.HintText.Render(h.Description)
		w := lipgloss.Width(part)
		if i > 0 {
			w += len(sep)
		}
		if used+w > inner {
			break
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(part)
		used += w
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, sizing the content area to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(contentHeight).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
