// Package pdftext extracts positioned text from PDF transcripts.
package pdftext

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/layout"
)

// runTolerance is how far apart, in points, two glyphs may be and still join one token.
const runTolerance = 0.5

// Source reads transcript pages from PDF files on disk.
type Source struct{}

// NewSource creates a PDF page source.
func NewSource() *Source {
	return &Source{}
}

// Pages opens the PDF at path and returns the positioned text of every page.
func (s *Source) Pages(ctx context.Context, path string) ([]layout.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPDFRead, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			common.LogDebug("Failed to close PDF", common.Fields{"path": path, "error": closeErr.Error()})
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPDFRead, err)
	}

	return s.Read(ctx, f, info.Size())
}

// Read extracts pages from an in-memory or already open PDF.
// Panics raised by the PDF parser on malformed input are returned as errors.
func (s *Source) Read(ctx context.Context, r io.ReaderAt, size int64) (pages []layout.Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("%w: malformed PDF: %v", common.ErrPDFRead, rec)
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrPDFRead, err)
	}

	n := reader.NumPage()
	if n == 0 {
		return nil, common.ErrNoPages
	}

	pages = make([]layout.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		p := reader.Page(i)
		if p.V.IsNull() {
			common.LogDebug("Skipping missing PDF page", common.Fields{"page": i})
			continue
		}

		width, height := mediaSize(p)
		pages = append(pages, layout.Page{
			Number: i,
			Width:  width,
			Height: height,
			Tokens: tokensFromTexts(p.Content().Text),
		})
	}

	if len(pages) == 0 {
		return nil, common.ErrNoPages
	}
	return pages, nil
}

// mediaSize returns the page size from the MediaBox, which may be set on the page or
// inherited from an ancestor in the page tree.
func mediaSize(p pdf.Page) (width, height float64) {
	var box pdf.Value
	for v := p.V; !v.IsNull(); v = v.Key("Parent") {
		if b := v.Key("MediaBox"); !b.IsNull() {
			box = b
			break
		}
	}
	if box.Len() < 4 {
		return 0, 0
	}
	width = box.Index(2).Float64() - box.Index(0).Float64()
	height = box.Index(3).Float64() - box.Index(1).Float64()
	return math.Abs(width), math.Abs(height)
}

// tokensFromTexts joins the glyphs the PDF library reports into runs of text. A glyph
// continues the current run when it sits on the same baseline at the same size and starts
// where the previous glyph ended. Fonts without width tables report zero advances, so a
// glyph at the same X as its predecessor also continues the run.
func tokensFromTexts(texts []pdf.Text) []layout.Token {
	var tokens []layout.Token

	var (
		cur      layout.Token
		open     bool
		lastX    float64
		end      float64
		measured bool
	)

	flush := func() {
		if !open {
			return
		}
		if measured && end > cur.X {
			cur.Width = end - cur.X
		}
		tokens = append(tokens, cur)
		open = false
	}

	for _, t := range texts {
		if t.S == "" {
			continue
		}

		if open && sameRun(cur, lastX, end, measured, t) {
			cur.Text += t.S
			lastX = t.X
			if t.W > 0 {
				end = t.X + t.W
			} else {
				measured = false
			}
			continue
		}

		flush()
		cur = layout.Token{Text: t.S, X: t.X, Y: t.Y, FontSize: t.FontSize}
		open = true
		lastX = t.X
		end = t.X + t.W
		measured = t.W > 0
	}
	flush()

	return tokens
}

func sameRun(cur layout.Token, lastX, end float64, measured bool, t pdf.Text) bool {
	if math.Abs(t.Y-cur.Y) > runTolerance || math.Abs(t.FontSize-cur.FontSize) > runTolerance {
		return false
	}
	if !measured {
		return math.Abs(t.X-lastX) <= runTolerance
	}
	return math.Abs(t.X-end) <= runTolerance
}
