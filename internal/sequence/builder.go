// Package sequence assembles tokenizer output from every page and column into one
// ordered transcript, locating the graduate boundary and the transfer credit block.
package sequence

import (
	"fmt"

	"github.com/Veraticus/gradcert/internal/classify"
	"github.com/Veraticus/gradcert/internal/common"
	"github.com/Veraticus/gradcert/internal/model"
	"github.com/Veraticus/gradcert/internal/tokenizer"
)

const (
	// SpecialTopicsPrefix is prepended to a course topic when it retitles a record.
	SpecialTopicsPrefix = "Special Topics: "
	// ElectiveTitle replaces the printed title of an elective until a topic line names it.
	ElectiveTitle = "Special Topics in Physics"
)

// Column is the tokenizer output of one column of one page.
type Column struct {
	Items []tokenizer.Item
	Page  int
	Index int
}

// Config controls transfer block association.
type Config struct {
	// TransferWindow caps how many records follow a transfer marker into its block.
	// Zero means no limit; the block still closes at a semester line or section marker.
	TransferWindow int
}

// Builder merges column streams into a TranscriptDocument.
type Builder struct {
	classifier *classify.Classifier
	config     Config
}

// NewBuilder creates a sequence builder.
func NewBuilder(classifier *classify.Classifier, config Config) *Builder {
	if config.TransferWindow < 0 {
		config.TransferWindow = 0
	}
	return &Builder{
		classifier: classifier,
		config:     config,
	}
}

// transferZone tracks an open "Transfer Credit from" block.
type transferZone struct {
	institution string
	records     int
	open        bool
}

// state is the per-document scan state.
type state struct {
	doc             *model.TranscriptDocument
	semester        string
	transfer        transferZone
	markerSeen      bool
	lastWasRecord   bool
	incomplete      int
	unrecognized    int
	outsideTransfer int
}

// Build merges columns, which must already be in reading order (pages ascending, columns
// left to right), into a document. It is deterministic for a given input.
func (b *Builder) Build(source string, columns []Column) *model.TranscriptDocument {
	s := &state{doc: &model.TranscriptDocument{Source: source}}

	for _, col := range columns {
		if col.Page > s.doc.PageCount {
			s.doc.PageCount = col.Page
		}
		for _, item := range col.Items {
			b.consume(s, col, item)
		}
	}

	b.finish(s)
	return s.doc
}

func (b *Builder) consume(s *state, col Column, item tokenizer.Item) {
	isRecord := false
	defer func() { s.lastWasRecord = isRecord }()

	switch item.Kind {
	case tokenizer.KindRecord:
		isRecord = true
		b.addRecord(s, col, item)

	case tokenizer.KindIncomplete:
		s.incomplete++
		common.LogWarn("Skipping incomplete course record", common.Fields{
			"source": s.doc.Source,
			"page":   col.Page,
			"column": col.Index,
			"text":   item.Text(),
		})
		s.doc.AddDiagnostic(fmt.Sprintf("page %d column %d: incomplete course record %q",
			col.Page, col.Index+1, item.Text()))

	case tokenizer.KindStudentName:
		if s.doc.StudentName == "" {
			s.doc.StudentName = item.Value
		}

	case tokenizer.KindStudentID:
		if s.doc.StudentID == "" {
			s.doc.StudentID = item.Value
		}

	case tokenizer.KindSemester:
		s.semester = item.Value
		s.closeTransfer()

	case tokenizer.KindGraduateMarker:
		if !s.markerSeen {
			s.markerSeen = true
			common.LogDebug("Found graduate record marker", common.Fields{
				"source":  s.doc.Source,
				"page":    col.Page,
				"records": len(s.doc.Records),
			})
		}
		s.closeTransfer()

	case tokenizer.KindUndergraduateMarker:
		s.closeTransfer()

	case tokenizer.KindTransferMarker:
		if s.markerSeen {
			s.doc.AddDiagnostic(fmt.Sprintf("page %d: transfer block %q after the graduate record marker is ignored",
				col.Page, item.Value))
			return
		}
		s.transfer = transferZone{institution: item.Value, open: true}
		s.semester = ""

	case tokenizer.KindTopic:
		if s.lastWasRecord && len(s.doc.Records) > 0 && item.Value != "" {
			last := &s.doc.Records[len(s.doc.Records)-1]
			last.Title = SpecialTopicsPrefix + item.Value
		}

	case tokenizer.KindTotals, tokenizer.KindColumnHeader:
		// Layout furniture.

	case tokenizer.KindUnrecognized:
		s.unrecognized++
		common.LogDebug("Unrecognized transcript line", common.Fields{
			"source": s.doc.Source,
			"page":   col.Page,
			"column": col.Index,
			"text":   item.Text(),
		})
	}
}

func (b *Builder) addRecord(s *state, col Column, item tokenizer.Item) {
	rec := b.classifier.Record(item.Fields, col.Page, col.Index)
	rec.Semester = s.semester
	if rec.Classification == model.ClassElective {
		rec.Title = ElectiveTitle
	}

	if s.markerSeen && s.doc.GraduateBoundary == nil {
		boundary := len(s.doc.Records)
		s.doc.GraduateBoundary = &boundary
	}

	switch {
	case s.transfer.open:
		s.transfer.records++
		rec.InTransferBlock = true
		if rec.Grade == model.TransferGrade {
			rec.IsTransfer = true
			rec.Semester = ""
		} else {
			warning := fmt.Sprintf("grade %q inside transfer block from %s; counted as a normal record",
				rec.Grade, s.transfer.institution)
			rec.Warnings = append(rec.Warnings, warning)
			common.LogWarn("Transfer block anomaly", common.Fields{
				"source": s.doc.Source,
				"course": rec.Code,
				"grade":  rec.Grade,
			})
		}
		if b.config.TransferWindow > 0 && s.transfer.records >= b.config.TransferWindow {
			s.closeTransfer()
		}

	case rec.Grade == model.TransferGrade:
		s.outsideTransfer++
		rec.Warnings = append(rec.Warnings, "transfer grade outside a transfer block")
		common.LogWarn("Transfer grade outside a transfer block", common.Fields{
			"source": s.doc.Source,
			"course": rec.Code,
		})
	}

	s.doc.Records = append(s.doc.Records, rec)
}

func (b *Builder) finish(s *state) {
	doc := s.doc

	switch {
	case !s.markerSeen:
		doc.AddDiagnostic(common.ErrNoGraduateRecord.Error())
	case doc.GraduateBoundary == nil:
		doc.AddDiagnostic("graduate record marker found but no course records follow it")
	}

	if s.unrecognized > 0 {
		doc.AddDiagnostic(fmt.Sprintf("%d unrecognized lines skipped", s.unrecognized))
	}
	if s.outsideTransfer > 0 {
		doc.AddDiagnostic(fmt.Sprintf("%d records carry a transfer grade outside a transfer block", s.outsideTransfer))
	}

	common.LogDebug("Built transcript sequence", common.Fields{
		"source":       doc.Source,
		"records":      len(doc.Records),
		"incomplete":   s.incomplete,
		"unrecognized": s.unrecognized,
		"boundary":     boundaryValue(doc.GraduateBoundary),
	})
}

func (s *state) closeTransfer() {
	s.transfer = transferZone{}
}

func boundaryValue(b *int) int {
	if b == nil {
		return -1
	}
	return *b
}
