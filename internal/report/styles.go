package report

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/gradcert/internal/cli"
	"github.com/Veraticus/gradcert/internal/model"
)

// Styles contains the styling used for the terminal report.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Subtle   lipgloss.Style
	Normal   lipgloss.Style
	Header   lipgloss.Style

	Box        lipgloss.Style
	PassBox    lipgloss.Style
	FailBox    lipgloss.Style
	Core       lipgloss.Style
	Elective   lipgloss.Style
	Research   lipgloss.Style
	Excluded   lipgloss.Style
	Annotation lipgloss.Style
}

// NewStyles creates the default report styles.
func NewStyles() *Styles {
	s := &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Success:  cli.SuccessStyle,
		Warning:  cli.WarningStyle,
		Error:    cli.ErrorStyle,
		Info:     cli.InfoStyle,
		Subtle:   cli.SubtleStyle,
		Normal:   lipgloss.NewStyle(),
		Header:   cli.TableHeaderStyle,
	}

	s.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cli.SubtleColor).
		Padding(0, 1)

	s.PassBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(cli.SuccessColor).
		Padding(0, 1)

	s.FailBox = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(cli.ErrorColor).
		Padding(0, 1)

	s.Core = lipgloss.NewStyle().
		Foreground(cli.PrimaryColor)

	s.Elective = lipgloss.NewStyle().
		Foreground(cli.InfoColor)

	s.Research = lipgloss.NewStyle().
		Foreground(cli.SuccessColor)

	s.Excluded = lipgloss.NewStyle().
		Foreground(cli.SubtleColor).
		Strikethrough(true)

	s.Annotation = lipgloss.NewStyle().
		Foreground(cli.WarningColor).
		Italic(true)

	return s
}

// WithWidth returns a copy with boxes sized for the given terminal width.
func (s *Styles) WithWidth(width int) *Styles {
	newStyles := *s
	if width > 0 && width < 100 {
		newStyles.Box = s.Box.Width(width - 4)
		newStyles.PassBox = s.PassBox.Width(width - 4)
		newStyles.FailBox = s.FailBox.Width(width - 4)
	}
	return &newStyles
}

// ForClassification returns the style for a classification.
func (s *Styles) ForClassification(c model.Classification) lipgloss.Style {
	switch c {
	case model.ClassCore:
		return s.Core
	case model.ClassElective:
		return s.Elective
	case model.ClassResearch:
		return s.Research
	case model.ClassExcluded:
		return s.Excluded
	default:
		return s.Normal
	}
}

// ForStatus returns the style for a requirement status.
func (s *Styles) ForStatus(status model.Status) lipgloss.Style {
	if status == model.StatusVerified {
		return s.Success
	}
	return s.Error
}
