package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

// ProgressBar is a one-line bar with an optional label and percentage.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewStepProgress builds a bar for current of total, labelled e.g.
// "Question 3 of 8". A zero total gives an empty bar.
func NewStepProgress(label string, current, total, width int) ProgressBar {
	p := ProgressBar{Label: label, Width: width}
	if total > 0 {
		p.Percent = float64(current) / float64(total)
	}
	return p
}

const minBarWidth = 4

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(theme.Body.Render(p.Label))
		b.WriteString("  ")
	}
	suffix := ""
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %3d%%", int(p.clamped()*100))
	}

	width := max(p.Width-lipgloss.Width(b.String())-len(suffix), minBarWidth)
	filled := min(int(float64(width)*p.clamped()), width)

	b.WriteString(theme.ProgressFilled.Render(strings.Repeat("█", filled)))
	b.WriteString(theme.ProgressEmpty.Render(strings.Repeat("░", width-filled)))
	if suffix != "" {
		b.WriteString(theme.HintText.Render(suffix))
	}
	return b.String()
}

func (p ProgressBar) clamped() float64 {
	return min(max(p.Percent, 0), 1)
}
