package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — muted terminal tones that read on dark and light backgrounds
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Prompt = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// Drill
var (
	Question = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	Note = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Score = lipgloss.NewStyle().
		Foreground(Accent)

	Streak = lipgloss.NewStyle().
		Foreground(Secondary)

	Reveal = lipgloss.NewStyle().
		Foreground(TextDim)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Answer diff classes
var (
	DiffMatch = lipgloss.NewStyle().
			Foreground(Success)

	DiffCase = lipgloss.NewStyle().
			Foreground(Accent)

	DiffWrong = lipgloss.NewStyle().
			Foreground(Error).
			Strikethrough(true)

	DiffMissing = lipgloss.NewStyle().
			Foreground(TextDim).
			Underline(true)
)
