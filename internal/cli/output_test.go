package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/listahan/listahan/internal/models"
)

func sampleBatch() *models.BatchResult {
	return &models.BatchResult{
		Files: []*models.FileResult{
			{
				SourceFile: "roster.pdf",
				Students: []models.StudentRecord{
					{Lastname: "Dela Cruz", Firstname: "Juan", Gender: "M"},
					{Firstname: "Ana"},
				},
				Errors: []models.ExtractionError{},
			},
			{
				SourceFile: "broken.pdf",
				Students:   []models.StudentRecord{},
				Errors: []models.ExtractionError{
					models.NewExtractionError(models.ErrNoTableFound, "no table-like region found"),
				},
			},
		},
		TotalStudents: 2,
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, ok := range []string{"text", "json"} {
		if _, err := ParseOutputFormat(ok); err != nil {
			t.Errorf("ParseOutputFormat(%q): %v", ok, err)
		}
	}
	if _, err := ParseOutputFormat("yaml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteBatchResults_text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBatchResults(&buf, sampleBatch(), OutputText); err != nil {
		t.Fatalf("WriteBatchResults: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"roster.pdf: 2 student(s)",
		"Dela Cruz, Juan (M)",
		"Ana",
		"! no_table_found:",
		"total: 2 student(s) from 2 file(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteBatchResults_warningMarker(t *testing.T) {
	batch := &models.BatchResult{Files: []*models.FileResult{{
		SourceFile: "blank.pdf",
		Errors: []models.ExtractionError{
			models.NewExtractionError(models.ErrEmptyResult, "no rows survived"),
		},
	}}}
	var buf bytes.Buffer
	if err := WriteBatchResults(&buf, batch, OutputText); err != nil {
		t.Fatalf("WriteBatchResults: %v", err)
	}
	if !strings.Contains(buf.String(), "~ empty_result:") {
		t.Errorf("warning marker missing:\n%s", buf.String())
	}
}

func TestWriteBatchResults_longMessagesTruncated(t *testing.T) {
	long := strings.Repeat("x", 500)
	batch := &models.BatchResult{Files: []*models.FileResult{{
		SourceFile: "broken.pdf",
		Errors: []models.ExtractionError{
			models.NewExtractionError(models.ErrUnreadableFile, long),
		},
	}}}
	var buf bytes.Buffer
	if err := WriteBatchResults(&buf, batch, OutputText); err != nil {
		t.Fatalf("WriteBatchResults: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, long) {
		t.Error("message was not truncated")
	}
	if !strings.Contains(out, strings.Repeat("x", maxMessageLen)+"...") {
		t.Errorf("truncated message missing ellipsis:\n%s", out)
	}
}

func TestWriteBatchResults_json(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteBatchResults(&buf, sampleBatch(), OutputJSON); err != nil {
		t.Fatalf("WriteBatchResults: %v", err)
	}
	var decoded models.BatchResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.TotalStudents != 2 || len(decoded.Files) != 2 {
		t.Errorf("round-tripped batch = %+v", decoded)
	}
}
