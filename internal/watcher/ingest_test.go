package watcher

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/listahan/listahan/internal/document"
	"github.com/listahan/listahan/internal/extract"
	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/internal/table"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func rosterService() *extract.Service {
	doc := &document.MemoryDocument{Pages: [][]document.Word{{
		{Text: "Lastname", X: 40, Y: 700, W: 40, H: 10},
		{Text: "Firstname", X: 130, Y: 700, W: 45, H: 10},
		{Text: "Gender", X: 230, Y: 700, W: 30, H: 10},
		{Text: "Dela Cruz", X: 40, Y: 682, W: 45, H: 10},
		{Text: "Juan", X: 130, Y: 682, W: 20, H: 10},
		{Text: "M", X: 230, Y: 682, W: 5, H: 10},
	}}}
	open := func([]byte) (document.Document, error) { return doc, nil }
	return extract.NewService(nil, table.DefaultConfig(), extract.WithOpener(open))
}

func workbookRows(t *testing.T, path string) [][]string {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read workbook: %v", err)
	}
	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()
	rows, err := wb.GetRows("Attendance")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	return rows
}

func TestIngestFile(t *testing.T) {
	dir := t.TempDir()
	drop := filepath.Join(dir, "roster.pdf")
	if err := os.WriteFile(drop, []byte("%PDF-stub"), 0600); err != nil {
		t.Fatalf("write drop file: %v", err)
	}
	out := filepath.Join(dir, "combined.xlsx")

	in := NewIngestor(rosterService(), out, models.ExportDefaults{Email: "x@y.org"}, zap.NewNop())
	in.IngestFile(drop)

	rows := workbookRows(t, out)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus 1", len(rows))
	}
	if rows[1][0] != "Dela Cruz, Juan" || rows[1][1] != "x@y.org" {
		t.Errorf("data row = %v", rows[1])
	}
}

func TestIngestFile_reingestReplaces(t *testing.T) {
	dir := t.TempDir()
	drop := filepath.Join(dir, "roster.pdf")
	if err := os.WriteFile(drop, []byte("%PDF-stub"), 0600); err != nil {
		t.Fatalf("write drop file: %v", err)
	}
	out := filepath.Join(dir, "combined.xlsx")

	in := NewIngestor(rosterService(), out, models.ExportDefaults{}, zap.NewNop())
	in.IngestFile(drop)
	in.IngestFile(drop)

	rows := workbookRows(t, out)
	if len(rows) != 2 {
		t.Errorf("re-ingested file duplicated rows: got %d rows", len(rows))
	}
}

func TestIngestFile_unreadablePathIsLoggedNotFatal(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "combined.xlsx")
	in := NewIngestor(rosterService(), out, models.ExportDefaults{}, zap.NewNop())

	in.IngestFile(filepath.Join(dir, "missing.pdf"))
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("no workbook should be written for an unreadable path")
	}
}
