// Package theme holds the palette and shared lipgloss styles.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: indigo for focus, teal for progress, amber for the user badge.
var (
	Primary   = lipgloss.Color("#6366F1")
	Secondary = lipgloss.Color("#14B8A6")
	Accent    = lipgloss.Color("#F59E0B")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Primary).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Label    = lipgloss.NewStyle().Foreground(TextDim).Bold(true)

	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// Choice lists.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Checked    = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

// Frame chrome.
var (
	Brand     = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	UserBadge = lipgloss.NewStyle().Foreground(Accent)
	HintKey   = lipgloss.NewStyle().Foreground(Text).Bold(true)
	HintText  = lipgloss.NewStyle().Foreground(TextDim)

	StepDone    = lipgloss.NewStyle().Foreground(Success)
	StepCurrent = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	StepTodo    = lipgloss.NewStyle().Foreground(TextDim)
)

// Widgets.
var (
	ProgressFilled = lipgloss.NewStyle().Foreground(Secondary)
	ProgressEmpty  = lipgloss.NewStyle().Foreground(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)
)
