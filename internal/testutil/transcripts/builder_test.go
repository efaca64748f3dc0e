package transcripts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/gradcert/internal/layout"
)

func pageText(p layout.Page) string {
	var b strings.Builder
	for _, t := range p.Tokens {
		b.WriteString(t.Text)
		b.WriteString(" ")
	}
	return b.String()
}

func TestBuilder_HeaderAndMarkers(t *testing.T) {
	pages := New("Ada Lovelace", "12345").
		WithGraduate(Semester{Term: "2023 Fall", Courses: []Course{
			{Code: "PHY 543", Title: "Quantum Mechanics I", Credits: 3},
		}}).
		Pages()

	require.Len(t, pages, 1)
	text := pageText(pages[0])
	assert.Contains(t, text, "Name: Ada Lovelace")
	assert.Contains(t, text, "Student ID: 12345")
	assert.Contains(t, text, "---------- Beginning of Graduate Record ----------")
	assert.NotContains(t, text, "Undergraduate")
	assert.Equal(t, 1, pages[0].Number)
	assert.InDelta(t, 612.0, pages[0].Width, 1e-9)
}

func TestBuilder_WithoutGraduateMarker(t *testing.T) {
	pages := New("Ada Lovelace", "12345").
		WithoutGraduateMarker().
		WithGraduate(Semester{Term: "2023 Fall", Courses: []Course{{Code: "PHY 543", Credits: 3}}}).
		Pages()

	assert.NotContains(t, pageText(pages[0]), "Graduate Record")
}

func TestBuilder_TransferCoursesPrintTransferGrade(t *testing.T) {
	pages := New("Ada Lovelace", "12345").
		WithTransfer("Riverside Community College", Course{Code: "PHY 571", Title: "Stat Mech", Credits: 3, Grade: "A"}).
		Pages()

	text := pageText(pages[0])
	assert.Contains(t, text, "Transfer Credit from Riverside Community College")
	assert.Contains(t, text, " T 0.000 ")
}

func TestBuilder_LongTranscriptFlowsIntoRightColumn(t *testing.T) {
	f, ok := Lookup("pass_standard")
	require.True(t, ok)

	pages := f.Pages()
	require.NotEmpty(t, pages)

	var right int
	for _, tok := range pages[0].Tokens {
		if tok.X >= rightX {
			right++
		}
	}
	assert.Positive(t, right, "first page should use the right column")

	split := layout.NewSplitter().Split(pages[0])
	assert.Len(t, split.Columns, 2)
	assert.Empty(t, split.Fallback)
}

func TestBuilder_BreaksOntoNewPages(t *testing.T) {
	b := New("Ada Lovelace", "12345")
	for i := 0; i < 6; i++ {
		b.WithUndergraduate(UndergraduateSemesters()...)
	}

	pages := b.Pages()

	require.GreaterOrEqual(t, len(pages), 3)
	for i, p := range pages {
		assert.Equal(t, i+1, p.Number)
		assert.NotEmpty(t, p.Tokens)
	}
	assert.NotContains(t, pageText(pages[1]), "UNOFFICIAL", "header is printed on the first page only")
}

func TestBuilder_GlyphTokens(t *testing.T) {
	pages := New("Ada", "1").WithGlyphTokens().Pages()

	for _, tok := range pages[0].Tokens {
		assert.Equal(t, 1, len([]rune(tok.Text)))
	}

	split := layout.NewSplitter().Split(pages[0])
	require.NotEmpty(t, split.Columns)
	var lines []string
	for _, l := range split.Columns[0].Lines {
		lines = append(lines, l.Text)
	}
	assert.Contains(t, lines, "Name: Ada")
}

func TestFixtures_AreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fixtures() {
		assert.False(t, seen[f.Name], "duplicate fixture %s", f.Name)
		seen[f.Name] = true
		assert.NotEmpty(t, f.Pages())
	}
	assert.Len(t, seen, 8)
}
