package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/SusanLiu63/PRNeko/internal/model"
)

// Color palette
var (
	colorGreen  = lipgloss.Color("42")
	colorYellow = lipgloss.Color("214")
	colorRed    = lipgloss.Color("196")
	colorCyan   = lipgloss.Color("45")
	colorGray   = lipgloss.Color("245")
	colorWhite  = lipgloss.Color("255")
	colorBorder = lipgloss.Color("240")
)

// Styles defines the visual styles for the dashboard.
type Styles struct {
	Box       lipgloss.Style
	Header    lipgloss.Style
	Mascot    lipgloss.Style
	MascotDim lipgloss.Style
	Section   lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	HelpBar   lipgloss.Style

	StatusPassing lipgloss.Style
	StatusFailing lipgloss.Style
	StatusPending lipgloss.Style

	MoodAnxious lipgloss.Style
	MoodHungry  lipgloss.Style
	MoodExcited lipgloss.Style
	MoodIdle    lipgloss.Style
}

// DefaultStyles returns the standard dashboard styles.
func DefaultStyles() Styles {
	return Styles{
		Box:       lipgloss.NewStyle().Padding(0, 1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(colorWhite),
		Mascot:    lipgloss.NewStyle().Foreground(colorYellow),
		MascotDim: lipgloss.NewStyle().Foreground(colorGray),
		Section:   lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
		Normal:    lipgloss.NewStyle().Foreground(colorWhite),
		Muted:     lipgloss.NewStyle().Foreground(colorGray),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(colorCyan),
		Error:     lipgloss.NewStyle().Foreground(colorRed),
		HelpBar:   lipgloss.NewStyle().Foreground(colorGray).BorderTop(true).BorderStyle(lipgloss.NormalBorder()).BorderForeground(colorBorder),

		StatusPassing: lipgloss.NewStyle().Foreground(colorGreen),
		StatusFailing: lipgloss.NewStyle().Foreground(colorRed),
		StatusPending: lipgloss.NewStyle().Foreground(colorYellow),

		MoodAnxious: lipgloss.NewStyle().Foreground(colorRed),
		MoodHungry:  lipgloss.NewStyle().Foreground(colorYellow),
		MoodExcited: lipgloss.NewStyle().Foreground(colorGreen),
		MoodIdle:    lipgloss.NewStyle().Foreground(colorGray),
	}
}

// statusStyle picks the style for a CI status.
func (s Styles) statusStyle(status model.Status) lipgloss.Style {
	switch status {
	case model.StatusPassing:
		return s.StatusPassing
	case model.StatusFailing:
		return s.StatusFailing
	default:
		return s.StatusPending
	}
}

// moodStyle picks the style for a mood.
func (s Styles) moodStyle(mood model.Mood) lipgloss.Style {
	switch mood {
	case model.MoodAnxious:
		return s.MoodAnxious
	case model.MoodHungry:
		return s.MoodHungry
	case model.MoodExcited:
		return s.MoodExcited
	default:
		return s.MoodIdle
	}
}
