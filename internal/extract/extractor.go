// Package extract turns uploaded roster PDFs into structured student records.
// All per-file failure is captured as data on the file's result; nothing
// raises past the extractor boundary.
package extract

import (
	"fmt"
	"runtime"

	"github.com/listahan/listahan/internal/document"
	"github.com/listahan/listahan/internal/match"
	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/internal/table"
	"go.uber.org/zap"
)

// Input is one file to extract: raw bytes plus the upload filename.
type Input struct {
	Content  []byte
	Filename string
}

// Opener parses raw bytes into a paged document. The default opener reads
// PDFs; tests inject synthetic documents.
type Opener func(content []byte) (document.Document, error)

// Service extracts student records from roster documents.
type Service struct {
	matcher *match.Matcher
	locator *table.Locator
	open    Opener
	workers int
	logger  *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithOpener replaces the PDF opener, e.g. with a synthetic document factory.
func WithOpener(open Opener) Option {
	return func(s *Service) { s.open = open }
}

// WithWorkers caps the batch worker pool size.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger sets a logger for per-file extraction events.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService builds an extraction service. aliases may be nil for the default
// header variants; cfg holds the table-detection thresholds.
func NewService(aliases match.AliasSet, cfg table.Config, opts ...Option) *Service {
	matcher := match.NewMatcher(aliases)
	s := &Service{
		matcher: matcher,
		locator: table.NewLocator(cfg, matcher.Score),
		open:    document.OpenPDF,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ExtractFile extracts records from a single file. The result always carries
// the filename; failures are recorded as ExtractionError entries with an
// empty or partial record list, never returned as an error.
//
// Extraction is deterministic: the same bytes yield the same result.
func (s *Service) ExtractFile(content []byte, filename string) *models.FileResult {
	result := &models.FileResult{
		SourceFile: filename,
		Students:   []models.StudentRecord{},
		Errors:     []models.ExtractionError{},
	}

	doc, err := s.open(content)
	if err != nil {
		result.Errors = append(result.Errors, models.NewExtractionError(
			models.ErrUnreadableFile,
			fmt.Sprintf("cannot read %s as a PDF: %v", filename, err),
		))
		return result
	}

	rows, err := s.locator.Locate(doc)
	if err != nil {
		result.Errors = append(result.Errors, models.NewExtractionError(
			models.ErrUnreadableFile,
			fmt.Sprintf("failed reading pages of %s: %v", filename, err),
		))
		return result
	}
	if len(rows) == 0 {
		result.Errors = append(result.Errors, models.NewExtractionError(
			models.ErrNoTableFound,
			fmt.Sprintf("no table-like region found in %s", filename),
		))
		return result
	}

	mapping := s.matcher.Match(rows[0])
	data := rows[1:]
	if len(mapping) == 0 && len(rows) > 2 {
		// The first row may be a title line; the real header can sit below it.
		mapping = s.matcher.Match(rows[1])
		data = rows[2:]
	}
	if len(mapping) == 0 {
		result.Errors = append(result.Errors, models.NewExtractionError(
			models.ErrNoRecognizedColumns,
			fmt.Sprintf("table in %s has no recognizable columns", filename),
		))
		return result
	}

	for _, row := range data {
		if table.RowIsBlank(row) {
			continue
		}
		rec, ok := match.RecordFromRow(row, mapping)
		if !ok {
			continue
		}
		result.Students = append(result.Students, rec)
	}

	if len(result.Students) == 0 {
		result.Errors = append(result.Errors, models.NewExtractionError(
			models.ErrEmptyResult,
			fmt.Sprintf("header recognized but no rows survived in %s", filename),
		))
	}

	s.logger.Debug("file extracted",
		zap.String("file", filename),
		zap.Int("students", len(result.Students)),
		zap.Int("errors", len(result.Errors)),
		zap.Int("mapped_columns", len(mapping)),
	)
	return result
}
