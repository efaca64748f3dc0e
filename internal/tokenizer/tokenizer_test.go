package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(items []Item) []Kind {
	out := make([]Kind, len(items))
	for i, it := range items {
		out[i] = it.Kind
	}
	return out
}

func TestTokenize_SingleLineRecord(t *testing.T) {
	tok := New(DefaultConfig())

	items := tok.Tokenize([]string{"PHY 543 Quantum Mechanics I 3.00 3.00 A 12.000"})

	require.Len(t, items, 1)
	assert.Equal(t, KindRecord, items[0].Kind)
	assert.Equal(t, Fields{
		Code:             "PHY 543",
		Title:            "Quantum Mechanics I",
		Grade:            "A",
		CreditsAttempted: 3,
		CreditsEarned:    3,
		QualityPoints:    12,
		HasPoints:        true,
	}, items[0].Fields)
}

func TestTokenize_WrappedTitle(t *testing.T) {
	tok := New(DefaultConfig())

	items := tok.Tokenize([]string{
		"PHY 610 Advanced Topics in Condensed",
		"Matter Physics",
		"3.00 3.00 B+ 9.900",
	})

	require.Len(t, items, 1)
	assert.Equal(t, KindRecord, items[0].Kind)
	assert.Equal(t, "Advanced Topics in Condensed Matter Physics", items[0].Fields.Title)
	assert.Equal(t, "B+", items[0].Fields.Grade)
	assert.InDelta(t, 9.9, items[0].Fields.QualityPoints, 1e-9)
	assert.Len(t, items[0].Lines, 3)
}

func TestTokenize_MissingPointsStillCompletes(t *testing.T) {
	tok := New(DefaultConfig())

	items := tok.Tokenize([]string{"PHY 690 Thesis Research 3.00 0.00 IP"})

	require.Len(t, items, 1)
	assert.Equal(t, KindRecord, items[0].Kind)
	assert.Equal(t, "IP", items[0].Fields.Grade)
	assert.False(t, items[0].Fields.HasPoints)
	assert.Zero(t, items[0].Fields.CreditsEarned)
}

func TestTokenize_EmptyTitle(t *testing.T) {
	items := New(DefaultConfig()).Tokenize([]string{"PHY 690 6.00 6.00 A 24.000"})

	require.Len(t, items, 1)
	assert.Equal(t, KindRecord, items[0].Kind)
	assert.Empty(t, items[0].Fields.Title)
	assert.InDelta(t, 6.0, items[0].Fields.CreditsEarned, 1e-9)
}

func TestTokenize_IncompleteRecords(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []Kind
	}{
		{
			name:  "missing grade at end of input",
			lines: []string{"PHY 543 Quantum Mechanics I 3.00 3.00"},
			want:  []Kind{KindIncomplete},
		},
		{
			name: "interrupted by next course",
			lines: []string{
				"PHY 543 Quantum Mechanics I",
				"PHY 544 Quantum Mechanics II 3.00 3.00 A 12.000",
			},
			want: []Kind{KindIncomplete, KindRecord},
		},
		{
			name: "interrupted by control line",
			lines: []string{
				"PHY 543 Quantum Mechanics I",
				"Term Totals: 3.00 3.00 12.000",
			},
			want: []Kind{KindIncomplete, KindTotals},
		},
		{
			name: "exceeds line limit",
			lines: []string{
				"PHY 543 A",
				"very",
				"long",
				"title",
				"3.00 3.00 A 12.000",
			},
			want: []Kind{KindIncomplete, KindUnrecognized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := New(DefaultConfig()).Tokenize(tt.lines)
			assert.Equal(t, tt.want, kinds(items))
		})
	}
}

func TestTokenize_ControlLines(t *testing.T) {
	tests := []struct {
		line      string
		wantKind  Kind
		wantValue string
	}{
		{"Name: Jane Q. Doe", KindStudentName, "Jane Q. Doe"},
		{"Student ID: 123456789", KindStudentID, "123456789"},
		{"2023 Fall", KindSemester, "F23"},
		{"2024 Sprng", KindSemester, "S24"},
		{"2024 Summer", KindSemester, "U24"},
		{"---------- Beginning of Graduate Record ----------", KindGraduateMarker, ""},
		{"---------- Beginning of Undergraduate Record ----------", KindUndergraduateMarker, ""},
		{"Transfer Credit from State University", KindTransferMarker, "State University"},
		{"Course Topic: Gravitational Waves", KindTopic, "Gravitational Waves"},
		{"Term Totals: 9.00 9.00 36.000", KindTotals, ""},
		{"Cum Totals: 30.00 30.00 120.000", KindTotals, ""},
		{"Course Description Atmpt Earn Grade Points", KindColumnHeader, ""},
		{"Unofficial Transcript", KindUnrecognized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			items := New(DefaultConfig()).Tokenize([]string{tt.line})
			require.Len(t, items, 1)
			assert.Equal(t, tt.wantKind, items[0].Kind)
			assert.Equal(t, tt.wantValue, items[0].Value)
			assert.True(t, items[0].Kind.IsControl())
		})
	}
}

func TestTokenize_TransferBlock(t *testing.T) {
	items := New(DefaultConfig()).Tokenize([]string{
		"Transfer Credit from Other University",
		"PHY 501 Classical Mechanics 3.00 3.00 T 0.000",
		"---------- Beginning of Graduate Record ----------",
		"2023 Fall",
		"PHY 543 Quantum Mechanics I 3.00 3.00 A 12.000",
	})

	assert.Equal(t, []Kind{
		KindTransferMarker,
		KindRecord,
		KindGraduateMarker,
		KindSemester,
		KindRecord,
	}, kinds(items))
	assert.Equal(t, "T", items[1].Fields.Grade)
}

func TestTokenize_NormalizesWhitespace(t *testing.T) {
	items := New(DefaultConfig()).Tokenize([]string{"", "   ", "PHY   543  Quantum\tMechanics I 3.00  3.00 A  12.000  "})

	require.Len(t, items, 1)
	assert.Equal(t, "PHY 543", items[0].Fields.Code)
	assert.Equal(t, "Quantum Mechanics I", items[0].Fields.Title)
}

func TestNew_DefaultsMaxRecordLines(t *testing.T) {
	tok := New(Config{})
	assert.Equal(t, DefaultConfig().MaxRecordLines, tok.config.MaxRecordLines)
}

func TestSemesterCode(t *testing.T) {
	assert.Equal(t, "F23", SemesterCode("2023", "Fall"))
	assert.Equal(t, "S24", SemesterCode("2024", "spring"))
	assert.Equal(t, "W25", SemesterCode("2025", "Winter"))
	assert.Equal(t, "23", SemesterCode("2023", "Autumn"))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "accumulating", StateAccumulating.String())
	assert.Equal(t, "complete", StateComplete.String())
	assert.Equal(t, "unknown", State(9).String())
}
