package engine

import (
	"context"

	"github.com/Veraticus/gradcert/internal/layout"
)

// PageSource defines the contract for reading positioned page text from a transcript file.
type PageSource interface {
	Pages(ctx context.Context, path string) ([]layout.Page, error)
}

// ProgressFunc is called after each transcript of a batch finishes.
type ProgressFunc func(done, total int, result Result)
