// Package layout recovers column-local line streams from positioned page text.
//
// Coordinates follow PDF user space: X grows to the right and Y grows upward, so the
// top of the page has the largest Y. The splitter never fails; pages whose positions
// are unusable come back as a single column in input order.
package layout

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// defaultFontSize is assumed for tokens that carry no size.
	defaultFontSize = 10.0
	// glyphWidthRatio estimates a glyph's advance when a token carries no width.
	glyphWidthRatio = 0.5
	// spanMergeRatio joins neighbouring tokens of a row, in font sizes, when deciding
	// whether the row runs across a column divider.
	spanMergeRatio = 1.0
	// maxBins bounds the occupancy profile for very wide coordinate ranges.
	maxBins = 10000
)

// Token is a run of text at a position on the page.
type Token struct {
	Text     string
	X        float64
	Y        float64
	Width    float64
	FontSize float64
}

func (t Token) size() float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return defaultFontSize
}

func (t Token) width() float64 {
	if t.Width > 0 {
		return t.Width
	}
	return t.size() * glyphWidthRatio * float64(utf8.RuneCountInString(t.Text))
}

func (t Token) right() float64 {
	return t.X + t.width()
}

func (t Token) center() float64 {
	return t.X + t.width()/2
}

// Page is one page of positioned text.
type Page struct {
	Tokens []Token
	Number int
	Width  float64
	Height float64
}

// Line is a reconstructed line of text inside one column.
type Line struct {
	Text string
	X    float64
	Y    float64
}

// Column is one vertical band of the page, lines ordered top to bottom.
type Column struct {
	Lines []Line
	Index int
	Left  float64
	Right float64
}

// Layout is the column structure detected on a page.
type Layout struct {
	// Fallback is non-empty when positions were unusable and the page was read in raw order.
	Fallback string
	Columns  []Column
	Page     int
}

// SingleColumn reports whether the page was read as one column.
func (l Layout) SingleColumn() bool {
	return len(l.Columns) <= 1
}

// Config holds the thresholds used for column and line detection.
type Config struct {
	// MinGapWidth is the narrowest whitespace gap, in points, that can divide columns.
	MinGapWidth float64
	// MinColumnWidth is the narrowest run of text, in points, either side of a divider.
	MinColumnWidth float64
	// MaxBlockedRatio is the share of text rows allowed to cross a gap. Full-width
	// header rows above the columns fall under it.
	MaxBlockedRatio float64
	// LineTolerance is the vertical distance, in points, within which tokens share a line.
	LineTolerance float64
	// SpaceRatio is the horizontal gap, in font sizes, that becomes a space between tokens.
	SpaceRatio float64
	// MaxColumns caps the number of bands per page.
	MaxColumns int
}

// DefaultConfig returns thresholds tuned for letter-size two-column transcripts.
func DefaultConfig() Config {
	return Config{
		MinGapWidth:     36.0,
		MinColumnWidth:  144.0,
		MaxBlockedRatio: 0.1,
		LineTolerance:   3.0,
		SpaceRatio:      0.15,
		MaxColumns:      4,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinGapWidth <= 0 {
		c.MinGapWidth = d.MinGapWidth
	}
	if c.MinColumnWidth <= 0 {
		c.MinColumnWidth = d.MinColumnWidth
	}
	if c.MaxBlockedRatio <= 0 {
		c.MaxBlockedRatio = d.MaxBlockedRatio
	}
	if c.LineTolerance <= 0 {
		c.LineTolerance = d.LineTolerance
	}
	if c.SpaceRatio <= 0 {
		c.SpaceRatio = d.SpaceRatio
	}
	if c.MaxColumns <= 0 {
		c.MaxColumns = d.MaxColumns
	}
	return c
}

// Splitter divides pages into column line streams.
type Splitter struct {
	config Config
}

// NewSplitter creates a splitter with default configuration.
func NewSplitter() *Splitter {
	return &Splitter{config: DefaultConfig()}
}

// NewSplitterWithConfig creates a splitter with custom configuration.
// Zero-valued fields take their defaults.
func NewSplitterWithConfig(config Config) *Splitter {
	return &Splitter{config: config.withDefaults()}
}

// Config returns the splitter's effective configuration.
func (s *Splitter) Config() Config {
	return s.config
}

// Split detects the columns of a page and returns their lines.
func (s *Splitter) Split(page Page) Layout {
	tokens := make([]Token, 0, len(page.Tokens))
	for _, t := range page.Tokens {
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		tokens = append(tokens, t)
	}

	if len(tokens) == 0 {
		return Layout{Page: page.Number}
	}

	if reason := degenerate(tokens); reason != "" {
		return rawOrder(page.Number, tokens, reason)
	}

	rows := s.groupRows(tokens)
	minX, maxX := extent(tokens)
	dividers := s.findDividers(rows, minX, maxX)

	columns := make([]Column, len(dividers)+1)
	for i := range columns {
		columns[i].Index = i
		columns[i].Left = minX
		columns[i].Right = maxX
		if i > 0 {
			columns[i].Left = dividers[i-1]
		}
		if i < len(dividers) {
			columns[i].Right = dividers[i]
		}
	}

	for _, row := range rows {
		for band, segment := range s.segmentRow(row, dividers) {
			if len(segment) == 0 {
				continue
			}
			columns[band].Lines = append(columns[band].Lines, s.buildLine(segment))
		}
	}

	return Layout{Page: page.Number, Columns: columns}
}

// degenerate explains why token positions cannot be used, or returns "".
func degenerate(tokens []Token) string {
	for _, t := range tokens {
		for _, v := range []float64{t.X, t.Y, t.Width, t.FontSize} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return "non-finite token position"
			}
		}
	}
	if len(tokens) < 2 {
		return ""
	}
	first := tokens[0]
	samePosition, sameBaseline := true, true
	for _, t := range tokens[1:] {
		if t.Y != first.Y {
			sameBaseline = false
		}
		if t.X != first.X || t.Y != first.Y {
			samePosition = false
		}
	}
	switch {
	case samePosition:
		return "all tokens share one position"
	case sameBaseline && overlapping(tokens):
		return "overlapping tokens share one baseline"
	}
	return ""
}

// overlapping reports whether any two tokens cover the same horizontal span.
func overlapping(tokens []Token) bool {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].X < sorted[i-1].right() {
			return true
		}
	}
	return false
}

// rawOrder is the fallback layout: one column, one line per token, input order.
func rawOrder(pageNum int, tokens []Token, reason string) Layout {
	col := Column{Index: 0}
	for _, t := range tokens {
		col.Lines = append(col.Lines, Line{Text: strings.TrimSpace(t.Text)})
	}
	return Layout{Page: pageNum, Columns: []Column{col}, Fallback: reason}
}

func extent(tokens []Token) (minX, maxX float64) {
	minX, maxX = tokens[0].X, tokens[0].right()
	for _, t := range tokens[1:] {
		if t.X < minX {
			minX = t.X
		}
		if r := t.right(); r > maxX {
			maxX = r
		}
	}
	return minX, maxX
}

// groupRows groups tokens into page-wide rows, top to bottom, each row ordered by X.
func (s *Splitter) groupRows(tokens []Token) [][]Token {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var rows [][]Token
	var current []Token
	var sumY float64

	for _, t := range sorted {
		if len(current) > 0 && math.Abs(t.Y-sumY/float64(len(current))) > s.config.LineTolerance {
			rows = append(rows, current)
			current, sumY = nil, 0
		}
		current = append(current, t)
		sumY += t.Y
	}
	if len(current) > 0 {
		rows = append(rows, current)
	}

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
	}
	return rows
}

// occupancy counts, per horizontal bin, how many rows have text over it.
type occupancy struct {
	counts []int
	origin float64
	step   float64
}

func newOccupancy(rows [][]Token, minX, maxX float64) occupancy {
	span := maxX - minX
	step := 1.0
	if span/step > maxBins {
		step = span / maxBins
	}
	n := int(math.Ceil(span/step)) + 1
	occ := occupancy{counts: make([]int, n), origin: minX, step: step}

	seen := make([]int, n)
	for r, row := range rows {
		for _, t := range row {
			lo, hi := occ.bin(t.X), occ.bin(t.right())
			for b := lo; b <= hi && b < n; b++ {
				if seen[b] != r+1 {
					seen[b] = r + 1
					occ.counts[b]++
				}
			}
		}
	}
	return occ
}

func (o occupancy) bin(x float64) int {
	b := int((x - o.origin) / o.step)
	if b < 0 {
		return 0
	}
	return b
}

func (o occupancy) x(bin int) float64 {
	return o.origin + float64(bin)*o.step
}

// findDividers returns the X positions of column dividers, left to right.
func (s *Splitter) findDividers(rows [][]Token, minX, maxX float64) []float64 {
	if maxX-minX < 2*s.config.MinColumnWidth+s.config.MinGapWidth {
		return nil
	}

	occ := newOccupancy(rows, minX, maxX)
	limit := int(s.config.MaxBlockedRatio * float64(len(rows)))
	open := make([]bool, len(occ.counts))
	for b, c := range occ.counts {
		open[b] = c <= limit
	}

	var dividers []float64
	s.splitBand(occ, open, 0, len(open)-1, &dividers)
	sort.Float64s(dividers)
	return dividers
}

// splitBand finds the widest qualifying gap inside bins [lo, hi] and recurses into
// both sides of it.
func (s *Splitter) splitBand(occ occupancy, open []bool, lo, hi int, dividers *[]float64) {
	if len(*dividers) >= s.config.MaxColumns-1 {
		return
	}

	bestStart, bestEnd := -1, -1
	for b := lo; b <= hi; {
		if !open[b] {
			b++
			continue
		}
		start := b
		for b <= hi && open[b] {
			b++
		}
		end := b - 1
		// Gaps must have text on both sides within the band.
		if start == lo || end == hi {
			continue
		}
		width := float64(end-start+1) * occ.step
		if width < s.config.MinGapWidth {
			continue
		}
		// Measure the text on either side, so a wide gap between fields near the
		// edge of a column is not mistaken for a divider.
		if occ.x(start)-occ.x(lo) < s.config.MinColumnWidth || occ.x(hi)-occ.x(end+1) < s.config.MinColumnWidth {
			continue
		}
		if bestStart < 0 || end-start > bestEnd-bestStart {
			bestStart, bestEnd = start, end
		}
	}

	if bestStart < 0 {
		return
	}

	width := float64(bestEnd-bestStart+1) * occ.step
	*dividers = append(*dividers, occ.x(bestStart)+width/2)

	s.splitBand(occ, open, lo, bestStart-1, dividers)
	s.splitBand(occ, open, bestEnd+1, hi, dividers)
}

// segmentRow splits a row's tokens into bands. A row whose text runs across a divider,
// such as a centred title, is kept whole in the band of its first token.
func (s *Splitter) segmentRow(row []Token, dividers []float64) [][]Token {
	segments := make([][]Token, len(dividers)+1)
	if len(dividers) == 0 {
		segments[0] = row
		return segments
	}

	if spansDivider(row, dividers) {
		band := bandOf(row[0].X, dividers)
		segments[band] = row
		return segments
	}

	for _, t := range row {
		band := bandOf(t.center(), dividers)
		segments[band] = append(segments[band], t)
	}
	return segments
}

func spansDivider(row []Token, dividers []float64) bool {
	left, right := row[0].X, row[0].right()
	check := func() bool {
		for _, d := range dividers {
			if left < d && right > d {
				return true
			}
		}
		return false
	}

	for _, t := range row[1:] {
		if t.X-right <= spanMergeRatio*t.size() {
			if r := t.right(); r > right {
				right = r
			}
			continue
		}
		if check() {
			return true
		}
		left, right = t.X, t.right()
	}
	return check()
}

func bandOf(x float64, dividers []float64) int {
	for i, d := range dividers {
		if x < d {
			return i
		}
	}
	return len(dividers)
}

// buildLine joins a row segment into text, inserting a space wherever the gap between
// neighbouring tokens is wider than SpaceRatio font sizes.
func (s *Splitter) buildLine(tokens []Token) Line {
	var sb strings.Builder
	var sumY float64

	for i, t := range tokens {
		sumY += t.Y
		if i > 0 {
			prev := tokens[i-1]
			gap := t.X - prev.right()
			if gap > s.config.SpaceRatio*t.size() {
				sb.WriteByte(' ')
			}
		}
		sb.WriteString(t.Text)
	}

	return Line{
		Text: strings.Join(strings.Fields(sb.String()), " "),
		X:    tokens[0].X,
		Y:    sumY / float64(len(tokens)),
	}
}
