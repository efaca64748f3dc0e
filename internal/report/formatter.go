package report

import (
	"fmt"
	"strings"

	"github.com/Veraticus/gradcert/internal/cli"
	"github.com/Veraticus/gradcert/internal/model"
)

// CLIFormatter renders certification results for terminal display.
type CLIFormatter struct {
	styles *Styles
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// NewCLIFormatterWithWidth creates a formatter sized for a terminal width.
func NewCLIFormatterWithWidth(width int) *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles().WithWidth(width),
	}
}

// FormatTranscript renders one student's course ledger, checklist and verdict.
func (f *CLIFormatter) FormatTranscript(l Ledger, doc *model.TranscriptDocument) string {
	var sections []string

	sections = append(sections, f.formatHeader(l, doc))
	sections = append(sections, f.formatCourses(l))
	sections = append(sections, f.formatRequirements(l.Requirements))
	sections = append(sections, f.formatVerdict(l))

	if doc != nil && len(doc.Diagnostics) > 0 {
		sections = append(sections, f.formatDiagnostics(doc.Diagnostics))
	}

	return strings.Join(sections, "\n\n")
}

// FormatBatch renders the batch summary table.
func (f *CLIFormatter) FormatBatch(rows []SummaryRow) string {
	if len(rows) == 0 {
		return f.styles.Warning.Render(cli.WarningIcon + " No transcripts certified")
	}

	var b strings.Builder
	b.WriteString(f.styles.Title.Render(cli.ChartIcon + " Certification Summary"))
	b.WriteString("\n")
	b.WriteString(f.styles.Header.Render(fmt.Sprintf("%-24s %-10s %6s %6s %6s %6s  %s",
		"Student", "ID", "Core", "Res", "400", "Total", "Result")))
	b.WriteString("\n")

	passed := 0
	for _, r := range rows {
		result := f.styles.Error.Render(cli.ErrorIcon + " " + certFailed)
		if r.Certified {
			passed++
			result = f.styles.Success.Render(cli.SuccessIcon + " " + certPassed)
		}
		name := r.StudentName
		if name == "" {
			name = r.Source
		}
		b.WriteString(fmt.Sprintf("%-24s %-10s %6s %6s %6s %6s  %s\n",
			truncate(name, 24), truncate(r.StudentID, 10),
			formatCredits(r.Core), formatCredits(r.ResearchApplied),
			formatCredits(r.LevelApplied), formatCredits(r.TotalApplied), result))
	}

	b.WriteString("\n")
	b.WriteString(f.styles.Subtle.Render(fmt.Sprintf("%d of %d transcripts certified", passed, len(rows))))
	return b.String()
}

func (f *CLIFormatter) formatHeader(l Ledger, doc *model.TranscriptDocument) string {
	name := l.StudentName
	if name == "" {
		name = "Unknown student"
	}
	title := f.styles.Title.Render(cli.FolderIcon + " " + name)

	details := fmt.Sprintf("Student ID: %s", l.StudentID)
	if doc != nil && doc.Source != "" {
		details += fmt.Sprintf("  Source: %s (%d pages)", doc.Source, doc.PageCount)
	}
	return fmt.Sprintf("%s\n%s", title, f.styles.Subtitle.Render(details))
}

func (f *CLIFormatter) formatCourses(l Ledger) string {
	var b strings.Builder
	b.WriteString(f.styles.Header.Render(fmt.Sprintf("%-4s %-8s %-28s %7s  %-20s %s",
		"Sem", "Course", "Title", "Credits", "Classification", "Grade")))
	b.WriteString("\n")

	if len(l.Records) == 0 {
		b.WriteString(f.styles.Subtle.Render("No graduate course records"))
		b.WriteString("\n")
	}

	for _, r := range l.Records {
		label := fmt.Sprintf("%-20s", r.ClassificationLabel())
		b.WriteString(fmt.Sprintf("%-4s %-8s %-28s %7s  %s %s\n",
			r.Semester, r.Code, truncate(r.Title, 28), formatCredits(r.CreditsEarned),
			f.styles.ForClassification(r.Classification).Render(label), r.Grade))
		for _, w := range r.Warnings {
			b.WriteString(f.styles.Annotation.Render("     " + cli.WarningIcon + " " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("%-4s %-8s %-28s %7s", "", "", labelTotalApplied, formatCredits(l.TotalApplied)))
	return f.styles.Box.Render(b.String())
}

func (f *CLIFormatter) formatRequirements(reqs []model.RequirementResult) string {
	var b strings.Builder
	b.WriteString(f.styles.Title.UnsetMargins().Render("Graduation Requirements"))
	for _, req := range reqs {
		icon := cli.ErrorIcon
		if req.Verified() {
			icon = cli.SuccessIcon
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%-34s %6s  %s", req.Label, formatCredits(req.Achieved),
			f.styles.ForStatus(req.Status).Render(icon+" "+string(req.Status))))
	}
	return b.String()
}

func (f *CLIFormatter) formatVerdict(l Ledger) string {
	if l.Certified {
		return f.styles.PassBox.Render(f.styles.Success.Render(cli.CheckIcon + " Certification PASSED"))
	}
	content := f.styles.Error.Render(cli.ErrorIcon + " Certification FAILED")
	if l.Reason != "" {
		content += "\n" + f.styles.Normal.Render(l.Reason)
	}
	return f.styles.FailBox.Render(content)
}

func (f *CLIFormatter) formatDiagnostics(diagnostics []string) string {
	lines := make([]string, 0, len(diagnostics)+1)
	lines = append(lines, f.styles.Subtle.Render("Diagnostics:"))
	for _, d := range diagnostics {
		lines = append(lines, f.styles.Subtle.Render("  • "+d))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
