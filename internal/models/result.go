package models

// ErrorKind classifies a per-file extraction failure.
type ErrorKind string

const (
	// ErrUnreadableFile means the byte stream is not a parseable PDF.
	ErrUnreadableFile ErrorKind = "unreadable_file"
	// ErrNoTableFound means no table-like region was detected on any page.
	ErrNoTableFound ErrorKind = "no_table_found"
	// ErrNoRecognizedColumns means a table was found but its header matched no target field.
	ErrNoRecognizedColumns ErrorKind = "no_recognized_columns"
	// ErrEmptyResult means a header was recognized but zero rows survived
	// normalization. Non-fatal: the file is kept with zero records.
	ErrEmptyResult ErrorKind = "empty_result"
)

// Warning reports whether the kind is a non-fatal warning rather than a hard error.
func (k ErrorKind) Warning() bool {
	return k == ErrEmptyResult
}

// ExtractionError is one structured error or warning attached to a file result.
type ExtractionError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Warning bool      `json:"warning"`
}

// NewExtractionError builds an ExtractionError with the warning flag derived from kind.
func NewExtractionError(kind ErrorKind, message string) ExtractionError {
	return ExtractionError{Kind: kind, Message: message, Warning: kind.Warning()}
}

// FileResult is the extraction outcome for a single uploaded file. Students
// preserve table row order; Errors carry every error and warning captured for
// the file. A file with a hard error has zero students.
type FileResult struct {
	SourceFile string            `json:"source_file"`
	Students   []StudentRecord   `json:"students"`
	Errors     []ExtractionError `json:"errors"`
}

// Failed reports whether the result carries at least one hard (non-warning) error.
func (f *FileResult) Failed() bool {
	for _, e := range f.Errors {
		if !e.Warning {
			return true
		}
	}
	return false
}

// BatchResult holds one FileResult per input file, in input order, plus the
// cross-file record total. It is built fresh per extraction request and never
// persisted.
type BatchResult struct {
	Files         []*FileResult `json:"files"`
	TotalStudents int           `json:"total_students"`
}

// ExportDefaults are batch-wide values applied to every exported row for the
// columns that are not derived from the PDF.
type ExportDefaults struct {
	Email           string `json:"email"`
	Beneficiary     string `json:"beneficiary"`
	AgeRange        string `json:"age_range"`
	AffiliationType string `json:"affiliation_type"`
	AffiliationName string `json:"affiliation_name"`
}
