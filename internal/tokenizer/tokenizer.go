// Package tokenizer groups a column's lines into course-record candidates and typed
// control lines.
//
// Records are recognised with a small state machine. A line that starts with a course
// code opens a record; further lines are appended until the accumulated text ends in the
// credits/grade/points pattern, which completes it. Everything else is a control line.
package tokenizer

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a tokenizer item represents.
type Kind string

// Item kinds.
const (
	KindRecord              Kind = "record"
	KindIncomplete          Kind = "incomplete"
	KindStudentName         Kind = "student_name"
	KindStudentID           Kind = "student_id"
	KindSemester            Kind = "semester"
	KindGraduateMarker      Kind = "graduate_marker"
	KindUndergraduateMarker Kind = "undergraduate_marker"
	KindTransferMarker      Kind = "transfer_marker"
	KindTopic               Kind = "topic"
	KindTotals              Kind = "totals"
	KindColumnHeader        Kind = "column_header"
	KindUnrecognized        Kind = "unrecognized"
)

// IsControl reports whether the kind is a pass-through control line.
func (k Kind) IsControl() bool {
	return k != KindRecord && k != KindIncomplete
}

// State is the tokenizer's record state.
type State int

// Tokenizer states.
const (
	StateIdle State = iota
	StateAccumulating
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAccumulating:
		return "accumulating"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Fields are the raw values parsed from a complete record.
type Fields struct {
	Code             string
	Title            string
	Grade            string
	CreditsAttempted float64
	CreditsEarned    float64
	QualityPoints    float64
	HasPoints        bool
}

// Item is one tokenizer output: a record candidate or a control line.
type Item struct {
	Kind Kind
	// Lines are the physical lines that produced the item.
	Lines []string
	// Value carries the parsed payload of control lines: the student name or ID, the
	// semester code, the transfer institution or the course topic.
	Value  string
	Fields Fields
}

// Text joins the item's lines with single spaces.
func (it Item) Text() string {
	return strings.Join(it.Lines, " ")
}

var (
	// A course code: 2-4 upper-case letters and a 2-4 digit number, optionally suffixed.
	courseStartRegex = regexp.MustCompile(`^([A-Z]{2,4})\s+(\d{2,4}[A-Z]?)\b\s*(.*)$`)

	gradePattern = `[A-F][+-]?|IP|NR|AU|T|P|S|U|W|I`

	// Attempted, earned, grade and optional quality points at the end of the record text.
	terminalRegex = regexp.MustCompile(`^(.*?)\s*(\d+\.\d{1,2})\s+(\d+\.\d{1,2})\s+(` + gradePattern + `)(?:\s+(\d+\.\d{3}))?\s*$`)

	nameRegex          = regexp.MustCompile(`^Name:\s+(.+)$`)
	studentIDRegex     = regexp.MustCompile(`^Student\s+ID:\s+(\d+)`)
	semesterRegex      = regexp.MustCompile(`^(\d{4})\s+(Fall|Spring|Sprng|Summer|Winter)\b`)
	graduateRegex      = regexp.MustCompile(`(?i)beginning\s+of\s+graduate\s+record`)
	undergraduateRegex = regexp.MustCompile(`(?i)beginning\s+of\s+undergraduate\s+record`)
	transferRegex      = regexp.MustCompile(`(?i)^transfer\s+credit\s+from\s*(.*)$`)
	topicRegex         = regexp.MustCompile(`(?i)^course\s+topic:\s*(.*)$`)
	totalsRegex        = regexp.MustCompile(`(?i)^(term|cum)\s+totals\b`)
	columnHeaderRegex  = regexp.MustCompile(`(?i)^course\s+description\b`)
	dashRuleRegex      = regexp.MustCompile(`^-+\s*|\s*-+$`)
)

// Config holds tokenizer limits.
type Config struct {
	// MaxRecordLines bounds how many physical lines a wrapped record may span.
	MaxRecordLines int
}

// DefaultConfig returns the default tokenizer limits.
func DefaultConfig() Config {
	return Config{MaxRecordLines: 4}
}

// Tokenizer turns column line streams into items.
type Tokenizer struct {
	config Config
}

// New creates a tokenizer. A non-positive MaxRecordLines takes the default.
func New(config Config) *Tokenizer {
	if config.MaxRecordLines <= 0 {
		config.MaxRecordLines = DefaultConfig().MaxRecordLines
	}
	return &Tokenizer{config: config}
}

// Tokenize scans one column's lines, top to bottom, and returns its items in order.
func (t *Tokenizer) Tokenize(lines []string) []Item {
	var items []Item
	var open []string
	state := StateIdle

	flush := func() {
		if state == StateAccumulating {
			items = append(items, Item{Kind: KindIncomplete, Lines: open})
		}
		open = nil
		state = StateIdle
	}

	for _, raw := range lines {
		line := strings.Join(strings.Fields(raw), " ")
		if line == "" {
			continue
		}

		if courseStartRegex.MatchString(line) {
			flush()
			open = []string{line}
			state = StateAccumulating
		} else if state == StateAccumulating {
			if kind, _ := classifyControl(line); kind != KindUnrecognized {
				flush()
				items = append(items, controlItem(line))
				continue
			}
			open = append(open, line)
		} else {
			items = append(items, controlItem(line))
			continue
		}

		if fields, ok := parseRecord(open); ok {
			items = append(items, Item{Kind: KindRecord, Lines: open, Fields: fields})
			open = nil
			state = StateComplete
			continue
		}

		if len(open) >= t.config.MaxRecordLines {
			flush()
		}
	}

	flush()
	return items
}

func controlItem(line string) Item {
	kind, value := classifyControl(line)
	return Item{Kind: kind, Lines: []string{line}, Value: value}
}

// classifyControl types a line that is not part of a record.
func classifyControl(line string) (Kind, string) {
	switch {
	case graduateRegex.MatchString(line):
		return KindGraduateMarker, ""
	case undergraduateRegex.MatchString(line):
		return KindUndergraduateMarker, ""
	}

	bare := dashRuleRegex.ReplaceAllString(line, "")

	if m := transferRegex.FindStringSubmatch(bare); m != nil {
		return KindTransferMarker, strings.TrimSpace(m[1])
	}
	if m := semesterRegex.FindStringSubmatch(bare); m != nil {
		return KindSemester, SemesterCode(m[1], m[2])
	}
	if m := nameRegex.FindStringSubmatch(bare); m != nil {
		return KindStudentName, strings.TrimSpace(m[1])
	}
	if m := studentIDRegex.FindStringSubmatch(bare); m != nil {
		return KindStudentID, m[1]
	}
	if m := topicRegex.FindStringSubmatch(bare); m != nil {
		return KindTopic, strings.TrimSpace(m[1])
	}
	if totalsRegex.MatchString(bare) {
		return KindTotals, ""
	}
	if columnHeaderRegex.MatchString(bare) {
		return KindColumnHeader, ""
	}
	return KindUnrecognized, ""
}

// SemesterCode abbreviates a year and term, e.g. ("2023", "Fall") -> "F23".
func SemesterCode(year, term string) string {
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	switch strings.ToLower(term) {
	case "fall":
		return "F" + year
	case "spring", "sprng":
		return "S" + year
	case "summer":
		return "U" + year
	case "winter":
		return "W" + year
	default:
		return year
	}
}

// parseRecord reports whether the accumulated lines form a complete record.
func parseRecord(lines []string) (Fields, bool) {
	text := strings.Join(lines, " ")

	start := courseStartRegex.FindStringSubmatch(text)
	if start == nil {
		return Fields{}, false
	}

	term := terminalRegex.FindStringSubmatch(start[3])
	if term == nil {
		return Fields{}, false
	}

	attempted, err := strconv.ParseFloat(term[2], 64)
	if err != nil {
		return Fields{}, false
	}
	earned, err := strconv.ParseFloat(term[3], 64)
	if err != nil {
		return Fields{}, false
	}

	fields := Fields{
		Code:             start[1] + " " + start[2],
		Title:            strings.TrimSpace(term[1]),
		CreditsAttempted: attempted,
		CreditsEarned:    earned,
		Grade:            term[4],
	}
	if term[5] != "" {
		points, err := strconv.ParseFloat(term[5], 64)
		if err != nil {
			return Fields{}, false
		}
		fields.QualityPoints = points
		fields.HasPoints = true
	}
	return fields, true
}
