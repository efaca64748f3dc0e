package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// Progress shows a batch of transcripts moving through certification.
type Progress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	passed int
	failed int
}

// NewProgress creates a progress bar for total transcripts.
func NewProgress(writer io.Writer, total int) *Progress {
	p := &Progress{writer: writer}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(p.description()),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Record advances the bar by one finished transcript.
func (p *Progress) Record(passed bool) {
	if passed {
		p.passed++
	} else {
		p.failed++
	}
	p.bar.Describe(p.description())
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar even when the batch stopped early.
func (p *Progress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}

// Passed returns how many recorded transcripts were certified.
func (p *Progress) Passed() int {
	return p.passed
}

// Failed returns how many recorded transcripts failed certification.
func (p *Progress) Failed() int {
	return p.failed
}

func (p *Progress) description() string {
	if p.passed+p.failed == 0 {
		return "[cyan][bold]Certifying transcripts...[reset]"
	}
	return fmt.Sprintf("[cyan][bold]Certifying transcripts...[reset] [green]%d passed[reset] [red]%d failed[reset]",
		p.passed, p.failed)
}
