package watcher

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/listahan/listahan/internal/export"
	"github.com/listahan/listahan/internal/extract"
	"github.com/listahan/listahan/internal/models"
	"go.uber.org/zap"
)

// Ingestor accumulates extraction results from watched files and rewrites a
// combined workbook after every ingest. A file ingested twice (re-dropped or
// rewritten) replaces its previous result instead of duplicating rows.
type Ingestor struct {
	extractor  *extract.Service
	outputPath string
	defaults   models.ExportDefaults
	logger     *zap.Logger

	mu      sync.Mutex
	order   []string
	results map[string]*models.FileResult
}

// NewIngestor creates an Ingestor writing to outputPath with the given
// batch-wide export defaults.
func NewIngestor(extractor *extract.Service, outputPath string, defaults models.ExportDefaults, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		extractor:  extractor,
		outputPath: outputPath,
		defaults:   defaults,
		logger:     logger,
		results:    make(map[string]*models.FileResult),
	}
}

// IngestFile extracts one dropped file and rewrites the combined workbook.
// Extraction failures are recorded on the file's result and logged; they never
// stop the ingest loop.
func (in *Ingestor) IngestFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		in.logger.Warn("ingest read failed", zap.String("path", path), zap.Error(err))
		return
	}
	result := in.extractor.ExtractFile(content, filepath.Base(path))
	for _, e := range result.Errors {
		in.logger.Warn("ingest extraction issue",
			zap.String("file", result.SourceFile),
			zap.String("kind", string(e.Kind)),
			zap.String("message", e.Message),
		)
	}

	in.mu.Lock()
	if _, seen := in.results[path]; !seen {
		in.order = append(in.order, path)
	}
	in.results[path] = result
	files := make([]*models.FileResult, 0, len(in.order))
	for _, p := range in.order {
		files = append(files, in.results[p])
	}
	in.mu.Unlock()

	buf, err := export.WriteWorkbook(files, in.defaults)
	if err != nil {
		in.logger.Error("ingest workbook build failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(in.outputPath, buf.Bytes(), 0600); err != nil {
		in.logger.Error("ingest workbook write failed", zap.String("path", in.outputPath), zap.Error(err))
		return
	}
	in.logger.Info("file ingested",
		zap.String("file", result.SourceFile),
		zap.Int("students", len(result.Students)),
		zap.String("output", in.outputPath),
	)
}
