package model

// TranscriptDocument is the full parsed transcript.
type TranscriptDocument struct {
	GraduateBoundary *int
	StudentName      string
	StudentID        string
	Source           string
	Records          []CourseRecord
	Diagnostics      []string
	PageCount        int
}

// HasGraduateRecord reports whether a valid graduate boundary was found.
func (d *TranscriptDocument) HasGraduateRecord() bool {
	return d.GraduateBoundary != nil && *d.GraduateBoundary >= 0 && *d.GraduateBoundary < len(d.Records)
}

// Scope returns the records that participate in certification: every record from the
// graduate boundary on, preceded by the transfer block immediately before it. A record
// inside that block with a non-transfer grade does not cut the block short.
// Without a boundary the scope is empty.
func (d *TranscriptDocument) Scope() []CourseRecord {
	if !d.HasGraduateRecord() {
		return nil
	}
	start := *d.GraduateBoundary
	for start > 0 && (d.Records[start-1].IsTransfer || d.Records[start-1].InTransferBlock) {
		start--
	}
	scope := make([]CourseRecord, len(d.Records)-start)
	copy(scope, d.Records[start:])
	return scope
}

// AddDiagnostic records a human-readable note about the parse.
func (d *TranscriptDocument) AddDiagnostic(msg string) {
	d.Diagnostics = append(d.Diagnostics, msg)
}
