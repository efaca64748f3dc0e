// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the command output and the certification reports.
var (
	PrimaryColor = lipgloss.Color("#5B8DEF") // academic blue
	SuccessColor = lipgloss.Color("#4ECDC4") // teal
	WarningColor = lipgloss.Color("#FFE66D") // yellow
	ErrorColor   = lipgloss.Color("#FF6B6B") // red
	InfoColor    = lipgloss.Color("#95E1D3") // light teal
	SubtleColor  = lipgloss.Color("#666666") // gray
	BorderColor  = lipgloss.Color("#333")
)

var (
	// TitleStyle is used for report and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtitleStyle is used for the student line under a title.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	// TableHeaderStyle underlines the header row of ledger and summary tables.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(BorderColor)
)

// Icons.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	GradIcon    = "🎓"
	ChartIcon   = "📊"
	FolderIcon  = "🗄️"
	CheckIcon   = "✅"
)

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo formats an info message with icon.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle formats a title with the graduation icon.
func FormatTitle(title string) string {
	return TitleStyle.Render(GradIcon + " " + title)
}

// FormatOutcome renders a one-line result for a transcript, as printed in quiet mode.
func FormatOutcome(source string, passed bool, reason string) string {
	if passed {
		return SuccessStyle.Render(fmt.Sprintf("%s %s certified", SuccessIcon, source))
	}
	if reason == "" {
		return ErrorStyle.Render(fmt.Sprintf("%s %s not certified", ErrorIcon, source))
	}
	return ErrorStyle.Render(fmt.Sprintf("%s %s not certified: %s", ErrorIcon, source, reason))
}

// StyleTitle formats text as a title.
func StyleTitle(text string) string {
	return TitleStyle.Render(text)
}

// StyleWarning formats text as a warning.
func StyleWarning(text string) string {
	return WarningStyle.Render(text)
}

// StyleInfo formats text as an info message.
func StyleInfo(text string) string {
	return InfoStyle.Render(text)
}
