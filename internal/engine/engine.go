// Package engine runs the transcript certification pipeline: page layout, tokenizing,
// sequencing and evaluation, one transcript at a time.
package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/gradcert/internal/certify"
	"github.com/Veraticus/gradcert/internal/classify"
	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/layout"
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/policy"
	"github.com/Veraticus/gradcert/internal/sequence"
	"github.com/Veraticus/gradcert/internal/tokenizer"
)

// Config holds configuration options for the pipeline stages.
type Config struct {
	Layout    layout.Config
	Tokenizer tokenizer.Config
	Sequence  sequence.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Layout:    layout.DefaultConfig(),
		Tokenizer: tokenizer.DefaultConfig(),
		Sequence:  sequence.Config{},
	}
}

// Certifier orchestrates the certification of transcripts.
type Certifier struct {
	source    PageSource
	policy    *policy.Policy
	splitter  *layout.Splitter
	tokenizer *tokenizer.Tokenizer
	builder   *sequence.Builder
	evaluator *certify.Evaluator
}

// Result is the outcome of certifying one transcript. Doc and Verdict are always set;
// Err carries the failure that prevented a full parse, if any.
type Result struct {
	Err     error
	Doc     *model.TranscriptDocument
	Path    string
	Verdict model.CertificationVerdict
}

// New creates a certifier with the default configuration.
func New(source PageSource, p *policy.Policy) *Certifier {
	return NewWithConfig(source, p, DefaultConfig())
}

// NewWithConfig creates a certifier with custom configuration.
func NewWithConfig(source PageSource, p *policy.Policy, config Config) *Certifier {
	return &Certifier{
		source:    source,
		policy:    p,
		splitter:  layout.NewSplitterWithConfig(config.Layout),
		tokenizer: tokenizer.New(config.Tokenizer),
		builder:   sequence.NewBuilder(classify.New(p), config.Sequence),
		evaluator: certify.New(p),
	}
}

// Policy returns the policy transcripts are certified against.
func (c *Certifier) Policy() *policy.Policy {
	return c.policy
}

// Parse turns pages into a transcript document without evaluating it.
func (c *Certifier) Parse(ctx context.Context, source string, pages []layout.Page) (*model.TranscriptDocument, error) {
	var columns []sequence.Column
	var diagnostics []string

	for i, page := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if page.Number == 0 {
			page.Number = i + 1
		}

		split := c.splitter.Split(page)
		if split.Fallback != "" {
			common.LogDebug("Page layout fell back to a single column", common.Fields{
				"source": source,
				"page":   page.Number,
				"reason": split.Fallback,
			})
			diagnostics = append(diagnostics, fmt.Sprintf("page %d: %s; read as a single column", page.Number, split.Fallback))
		}

		for _, col := range split.Columns {
			columns = append(columns, sequence.Column{
				Page:  page.Number,
				Index: col.Index,
				Items: c.tokenizer.Tokenize(lineTexts(col.Lines)),
			})
		}
	}

	doc := c.builder.Build(source, columns)
	doc.PageCount = len(pages)
	if len(pages) == 0 {
		diagnostics = append(diagnostics, common.ErrNoPages.Error())
	}
	doc.Diagnostics = append(diagnostics, doc.Diagnostics...)
	return doc, nil
}

// Certify parses pages and evaluates the resulting transcript.
func (c *Certifier) Certify(ctx context.Context, source string, pages []layout.Page) Result {
	doc, err := c.Parse(ctx, source, pages)
	if err != nil {
		return c.failed(source, err)
	}

	verdict := c.evaluator.Evaluate(doc)
	common.LogInfo("Certified transcript", common.Fields{
		"source":  source,
		"student": doc.StudentName,
		"records": len(doc.Records),
		"total":   verdict.Totals.TotalApplied,
		"outcome": string(verdict.Overall),
	})

	return Result{Path: source, Doc: doc, Verdict: verdict}
}

// CertifyFile reads a transcript through the page source and certifies it. A file that
// cannot be read still yields a failed verdict whose reason carries the error.
func (c *Certifier) CertifyFile(ctx context.Context, path string) (result Result) {
	defer func() {
		if rec := recover(); rec != nil {
			result = c.failed(path, fmt.Errorf("%w: %v", common.ErrPDFRead, rec))
		}
	}()

	pages, err := c.source.Pages(ctx, path)
	if err != nil {
		return c.failed(path, fmt.Errorf("failed to read %s: %w", path, err))
	}
	return c.Certify(ctx, path, pages)
}

// CertifyAll certifies files one after another. A failing transcript does not stop the
// batch; cancellation does, returning the results gathered so far.
func (c *Certifier) CertifyAll(ctx context.Context, paths []string, progress ProgressFunc) ([]Result, error) {
	results := make([]Result, 0, len(paths))

	for i, path := range paths {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		result := c.CertifyFile(ctx, path)
		if result.Err != nil {
			common.LogError(result.Err, "Transcript certification failed", common.Fields{"path": path})
		}
		results = append(results, result)

		if progress != nil {
			progress(i+1, len(paths), result)
		}
	}

	return results, nil
}

// failed builds the result for a transcript that could not be parsed: an empty document
// evaluated like any other, with the error as the reason.
func (c *Certifier) failed(source string, err error) Result {
	doc := &model.TranscriptDocument{Source: source}
	doc.AddDiagnostic(err.Error())

	verdict := c.evaluator.Evaluate(doc)
	verdict.Overall = model.OutcomeFail
	verdict.Reason = err.Error()

	return Result{Path: source, Doc: doc, Verdict: verdict, Err: err}
}

func lineTexts(lines []layout.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
