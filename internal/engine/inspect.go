package engine

import (
	"context"
	"fmt"

	"github.com/Veraticus/gradcert/internal/layout"
	"github.com/Veraticus/gradcert/internal/tokenizer"
)

// PageView shows how one page was read: its detected columns and, per column, the
// tokenizer items produced from the column's lines.
type PageView struct {
	Layout layout.Layout
	Items  [][]tokenizer.Item
}

// Inspect reads a transcript and returns the layout and tokenizer view of every page.
func (c *Certifier) Inspect(ctx context.Context, path string) ([]PageView, error) {
	pages, err := c.source.Pages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return c.InspectPages(pages), nil
}

// InspectPages is Inspect for pages already in memory.
func (c *Certifier) InspectPages(pages []layout.Page) []PageView {
	views := make([]PageView, 0, len(pages))
	for i, page := range pages {
		if page.Number == 0 {
			page.Number = i + 1
		}
		split := c.splitter.Split(page)
		view := PageView{Layout: split, Items: make([][]tokenizer.Item, len(split.Columns))}
		for j, col := range split.Columns {
			view.Items[j] = c.tokenizer.Tokenize(lineTexts(col.Lines))
		}
		views = append(views, view)
	}
	return views
}
