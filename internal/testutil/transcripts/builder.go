// Package transcripts builds positioned two-column transcript pages for tests.
//
// The pages mimic a registrar's unofficial transcript on US letter paper: a centred
// header, then semesters flowing down the left column, over to the right column and on to
// the next page. Every string drawn becomes a layout.Token, so tests exercise the layout
// splitter the same way text extracted from a real PDF would.
//
// Example usage:
//
//	pages := transcripts.New("Ada Lovelace", "99990001").
//		WithStandardUndergraduate().
//		WithGraduate(transcripts.Semester{
//			Term: "2023 Fall",
//			Courses: []transcripts.Course{
//				{Code: "PHY 543", Title: "Quantum Mechanics I", Credits: 3, Grade: "A"},
//			},
//		}).
//		Pages()
package transcripts

import (
	"fmt"
	"unicode/utf8"

	"github.com/Veraticus/gradcert/internal/layout"
)

const (
	inch       = 72.0
	pageWidth  = 8.5 * inch
	pageHeight = 11 * inch

	leftX        = 0.4 * inch
	rightX       = pageWidth/2 + 0.2*inch
	bottomMargin = 0.75 * inch

	// Field offsets within a column.
	titleOffset     = 0.55 * inch
	attemptedOffset = 2.0 * inch
	earnedOffset    = 2.4 * inch
	gradeOffset     = 2.75 * inch
	pointsOffset    = 3.1 * inch

	maxTitle = 18
)

// Course is one course line.
type Course struct {
	Code  string
	Title string
	// Grade defaults to "A". Transfer courses always print "T".
	Grade string
	// Topic, when set, prints a "Course Topic:" line under the course.
	Topic   string
	Credits float64
}

// Semester is a term header followed by its courses and totals.
type Semester struct {
	Term    string
	Courses []Course
}

// Builder provides a fluent interface for constructing transcript pages.
type Builder struct {
	name             string
	id               string
	honours          string
	transferFrom     string
	undergraduate    []Semester
	transfer         []Course
	graduate         []Semester
	noGraduateMarker bool
	glyphs           bool
}

// New starts a transcript for a student.
func New(name, id string) *Builder {
	return &Builder{name: name, id: id}
}

// WithUndergraduate adds an undergraduate record with the given semesters.
func (b *Builder) WithUndergraduate(semesters ...Semester) *Builder {
	b.undergraduate = append(b.undergraduate, semesters...)
	return b
}

// WithStandardUndergraduate adds the four-year physics undergraduate record.
func (b *Builder) WithStandardUndergraduate() *Builder {
	return b.WithUndergraduate(UndergraduateSemesters()...)
}

// WithHonours sets the honours printed under the undergraduate degree.
func (b *Builder) WithHonours(honours string) *Builder {
	b.honours = honours
	return b
}

// WithTransfer adds a transfer credit block printed before the graduate record.
func (b *Builder) WithTransfer(institution string, courses ...Course) *Builder {
	b.transferFrom = institution
	b.transfer = append(b.transfer, courses...)
	return b
}

// WithGraduate adds graduate semesters.
func (b *Builder) WithGraduate(semesters ...Semester) *Builder {
	b.graduate = append(b.graduate, semesters...)
	return b
}

// WithoutGraduateMarker omits the "Beginning of Graduate Record" line.
func (b *Builder) WithoutGraduateMarker() *Builder {
	b.noGraduateMarker = true
	return b
}

// WithGlyphTokens emits one token per character, the way PDF text extraction does.
func (b *Builder) WithGlyphTokens() *Builder {
	b.glyphs = true
	return b
}

// Pages renders the transcript.
func (b *Builder) Pages() []layout.Page {
	w := &writer{glyphs: b.glyphs}
	w.newPage(pageHeight - 1.7*inch)
	w.header(b.name, b.id)

	if len(b.undergraduate) > 0 {
		w.marker("Beginning of Undergraduate Record")
		for _, sem := range b.undergraduate {
			w.semester(sem.Term, sem.Courses, false)
		}
		w.degrees(b.honours)
	}

	if b.transferFrom != "" && len(b.transfer) > 0 {
		w.transfer(b.transferFrom, b.transfer)
	}

	w.resetCumulative()
	if !b.noGraduateMarker {
		w.marker("Beginning of Graduate Record")
	}
	for _, sem := range b.graduate {
		w.semester(sem.Term, sem.Courses, false)
	}

	return w.pages
}

// writer lays strings out in two columns, breaking to the right column and then to a
// new page when a block does not fit.
type writer struct {
	pages        []layout.Page
	y            [2]float64
	col          int
	cumAttempted float64
	cumEarned    float64
	cumUnits     float64
	cumPoints    float64
	glyphs       bool
}

func (w *writer) newPage(top float64) {
	w.pages = append(w.pages, layout.Page{
		Number: len(w.pages) + 1,
		Width:  pageWidth,
		Height: pageHeight,
	})
	w.y = [2]float64{top, top}
	w.col = 0
}

func (w *writer) x() float64 {
	if w.col == 0 {
		return leftX
	}
	return rightX
}

func (w *writer) advance(d float64) {
	w.y[w.col] -= d
}

func (w *writer) ensure(needed float64) {
	if w.y[w.col]-needed >= bottomMargin {
		return
	}
	if w.col == 0 {
		w.col = 1
		return
	}
	w.newPage(pageHeight - 0.75*inch)
}

func (w *writer) draw(x, y, size float64, s string) {
	page := &w.pages[len(w.pages)-1]
	if !w.glyphs {
		page.Tokens = append(page.Tokens, layout.Token{Text: s, X: x, Y: y, FontSize: size})
		return
	}
	advance := size * 0.5
	for i, r := range []rune(s) {
		page.Tokens = append(page.Tokens, layout.Token{
			Text:     string(r),
			X:        x + float64(i)*advance,
			Y:        y,
			Width:    advance,
			FontSize: size,
		})
	}
}

func (w *writer) drawCentred(y, size float64, s string) {
	width := size * 0.5 * float64(utf8.RuneCountInString(s))
	w.draw(pageWidth/2-width/2, y, size, s)
}

func (w *writer) header(name, id string) {
	y := pageHeight - 0.5*inch
	w.drawCentred(y, 14, "UNOFFICIAL ACADEMIC TRANSCRIPT")
	y -= 0.25 * inch
	w.drawCentred(y, 10, "Westbrook State University")
	y -= 0.35 * inch
	if name != "" {
		w.draw(0.5*inch, y, 10, "Name: "+name)
	}
	y -= 0.2 * inch
	if id != "" {
		w.draw(0.5*inch, y, 10, "Student ID: "+id)
	}
}

func (w *writer) marker(text string) {
	w.ensure(0.4 * inch)
	w.draw(w.x(), w.y[w.col], 9, "---------- "+text+" ----------")
	w.advance(0.25 * inch)
}

func (w *writer) semesterHeader(term string) {
	w.ensure(0.5 * inch)
	x := w.x()
	w.draw(x, w.y[w.col], 9, term)
	w.advance(0.18 * inch)

	y := w.y[w.col]
	w.draw(x, y, 7, "Course")
	w.draw(x+titleOffset, y, 7, "Description")
	w.draw(x+attemptedOffset, y, 7, "Atmpt")
	w.draw(x+earnedOffset, y, 7, "Earn")
	w.draw(x+gradeOffset, y, 7, "Grade")
	w.draw(x+pointsOffset, y, 7, "Points")
	w.advance(0.15 * inch)
}

func (w *writer) course(c Course, transfer bool) (float64, float64) {
	w.ensure(0.18 * inch)
	x, y := w.x(), w.y[w.col]

	grade := c.Grade
	if grade == "" {
		grade = "A"
	}
	points := gradePoints(grade) * c.Credits
	if transfer {
		grade = "T"
		points = 0
	}

	title := c.Title
	if utf8.RuneCountInString(title) > maxTitle {
		title = string([]rune(title)[:maxTitle])
	}

	w.draw(x, y, 8, c.Code)
	if title != "" {
		w.draw(x+titleOffset, y, 8, title)
	}
	w.draw(x+attemptedOffset, y, 8, fmt.Sprintf("%.2f", c.Credits))
	w.draw(x+earnedOffset, y, 8, fmt.Sprintf("%.2f", c.Credits))
	w.draw(x+gradeOffset, y, 8, grade)
	w.draw(x+pointsOffset, y, 8, fmt.Sprintf("%.3f", points))
	w.advance(0.15 * inch)

	if c.Topic != "" {
		w.ensure(0.15 * inch)
		w.draw(x+titleOffset, w.y[w.col], 7, "Course Topic: "+c.Topic)
		w.advance(0.15 * inch)
	}
	return c.Credits, points
}

func (w *writer) semester(term string, courses []Course, transfer bool) {
	w.ensure(0.5*inch + float64(len(courses))*0.15*inch + 0.4*inch)
	w.semesterHeader(term)

	var credits, points float64
	for _, c := range courses {
		cr, pts := w.course(c, transfer)
		credits += cr
		points += pts
	}
	w.totals(credits, points)
}

func (w *writer) totals(credits, points float64) {
	w.cumAttempted += credits
	w.cumEarned += credits
	w.cumUnits += credits
	w.cumPoints += points

	termGPA, cumGPA := 0.0, 0.0
	if credits > 0 {
		termGPA = points / credits
	}
	if w.cumUnits > 0 {
		cumGPA = w.cumPoints / w.cumUnits
	}

	x := w.x()
	w.advance(0.05 * inch)
	w.totalsLine(x, "Term Totals:", credits, credits, termGPA, points)
	w.advance(0.13 * inch)
	w.totalsLine(x, "Cum Totals:", w.cumAttempted, w.cumEarned, cumGPA, w.cumPoints)
	w.advance(0.25 * inch)
}

func (w *writer) totalsLine(x float64, label string, attempted, earned, gpa, points float64) {
	y := w.y[w.col]
	w.draw(x, y, 7, label)
	w.draw(x+attemptedOffset, y, 7, fmt.Sprintf("%.2f", attempted))
	w.draw(x+earnedOffset, y, 7, fmt.Sprintf("%.2f", earned))
	w.draw(x+gradeOffset, y, 7, fmt.Sprintf("%.3f", gpa))
	w.draw(x+pointsOffset, y, 7, fmt.Sprintf("%.3f", points))
}

func (w *writer) degrees(honours string) {
	w.ensure(0.9 * inch)
	gpa := 0.0
	if w.cumUnits > 0 {
		gpa = w.cumPoints / w.cumUnits
	}

	lines := []string{
		"Degree: Bachelor of Science",
		"Confer Date: May 2023",
		fmt.Sprintf("Degree GPA: %.3f", gpa),
	}
	if honours != "" {
		lines = append(lines, "Degree Honours: "+honours)
	}
	lines = append(lines, "Plan: Physics")

	w.draw(w.x(), w.y[w.col], 9, "---------- Degrees Awarded ----------")
	w.advance(0.2 * inch)
	for i, line := range lines {
		w.draw(w.x(), w.y[w.col], 8, line)
		if i == len(lines)-1 {
			w.advance(0.25 * inch)
			continue
		}
		w.advance(0.15 * inch)
	}
}

func (w *writer) transfer(institution string, courses []Course) {
	w.ensure(0.6 * inch)
	w.draw(w.x(), w.y[w.col], 8, "Transfer Credit from "+institution)
	w.advance(0.2 * inch)

	w.semesterHeader("Transfer")
	var credits float64
	for _, c := range courses {
		cr, _ := w.course(c, true)
		credits += cr
	}
	w.cumAttempted += credits
	w.cumEarned += credits
	w.advance(0.15 * inch)
}

func (w *writer) resetCumulative() {
	w.cumAttempted, w.cumEarned, w.cumUnits, w.cumPoints = 0, 0, 0, 0
}

func gradePoints(grade string) float64 {
	switch grade {
	case "A+", "A":
		return 4.0
	case "A-":
		return 3.7
	case "B+":
		return 3.3
	case "B":
		return 3.0
	case "B-":
		return 2.7
	case "C+":
		return 2.3
	case "C":
		return 2.0
	case "C-":
		return 1.7
	case "D+":
		return 1.3
	case "D":
		return 1.0
	case "D-":
		return 0.7
	default:
		return 0
	}
}
