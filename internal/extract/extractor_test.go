package extract

import (
	"errors"
	"reflect"
	"testing"

	"github.com/listahan/listahan/internal/document"
	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/internal/table"
)

// gridPage lays out cell text as positioned words, one row every 18 points
// downward from top, columns 90+ points apart.
func gridPage(rows [][]string, top float64) []document.Word {
	colX := []float64{40, 130, 230, 330, 430, 530, 630, 730, 830, 930}
	var words []document.Word
	y := top
	for _, row := range rows {
		for ci, cell := range row {
			if cell == "" {
				continue
			}
			words = append(words, document.Word{
				Text: cell,
				X:    colX[ci],
				Y:    y,
				W:    float64(len(cell)) * 5,
				H:    10,
			})
		}
		y -= 18
	}
	return words
}

// docOpener returns an Opener that ignores the content and yields doc.
func docOpener(doc document.Document) Opener {
	return func([]byte) (document.Document, error) { return doc, nil }
}

func rosterDoc(rows [][]string) document.Document {
	return &document.MemoryDocument{Pages: [][]document.Word{gridPage(rows, 700)}}
}

func TestExtractFile(t *testing.T) {
	doc := rosterDoc([][]string{
		{"No", "Lastname", "Firstname", "Middlename", "Gender"},
		{"1", "Dela Cruz", "Juan", "Santos", "M"},
		{"2", "Reyes", "Ana", "", "F"},
	})
	svc := NewService(nil, table.DefaultConfig(), WithOpener(docOpener(doc)))

	result := svc.ExtractFile([]byte("roster"), "roster.pdf")
	if result.SourceFile != "roster.pdf" {
		t.Errorf("SourceFile = %q", result.SourceFile)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	want := []models.StudentRecord{
		{Lastname: "Dela Cruz", Firstname: "Juan", Middlename: "Santos", Gender: "M"},
		{Lastname: "Reyes", Firstname: "Ana", Gender: "F"},
	}
	if !reflect.DeepEqual(result.Students, want) {
		t.Errorf("Students = %+v, want %+v", result.Students, want)
	}
}

func TestExtractFile_titleAboveHeader(t *testing.T) {
	doc := rosterDoc([][]string{
		{"", "Attendance", ""},
		{"Lastname", "Firstname", "Gender"},
		{"Dela Cruz", "Juan", "M"},
	})
	svc := NewService(nil, table.DefaultConfig(), WithOpener(docOpener(doc)))

	result := svc.ExtractFile(nil, "titled.pdf")
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Students) != 1 || result.Students[0].Lastname != "Dela Cruz" {
		t.Errorf("Students = %+v", result.Students)
	}
}

func TestExtractFile_unreadable(t *testing.T) {
	open := func([]byte) (document.Document, error) { return nil, errors.New("bad xref") }
	svc := NewService(nil, table.DefaultConfig(), WithOpener(open))

	result := svc.ExtractFile([]byte("junk"), "broken.pdf")
	if len(result.Students) != 0 {
		t.Errorf("expected no students, got %+v", result.Students)
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != models.ErrUnreadableFile {
		t.Fatalf("errors = %v, want one %s", result.Errors, models.ErrUnreadableFile)
	}
	if !result.Failed() {
		t.Error("unreadable file must be marked failed")
	}
}

func TestExtractFile_noTable(t *testing.T) {
	doc := &document.MemoryDocument{Pages: [][]document.Word{{
		{Text: "Certificate of Appearance", X: 200, Y: 700, W: 120, H: 12},
	}}}
	svc := NewService(nil, table.DefaultConfig(), WithOpener(docOpener(doc)))

	result := svc.ExtractFile(nil, "prose.pdf")
	if len(result.Errors) != 1 || result.Errors[0].Kind != models.ErrNoTableFound {
		t.Fatalf("errors = %v, want one %s", result.Errors, models.ErrNoTableFound)
	}
	if !result.Failed() {
		t.Error("tableless file must be marked failed")
	}
}

func TestExtractFile_emptyResultWarning(t *testing.T) {
	// Header resolves, but the only data row carries no name.
	doc := rosterDoc([][]string{
		{"Lastname", "Firstname", "Gender"},
		{"", "", "M"},
	})
	svc := NewService(nil, table.DefaultConfig(), WithOpener(docOpener(doc)))

	result := svc.ExtractFile(nil, "blank.pdf")
	if len(result.Students) != 0 {
		t.Errorf("expected no students, got %+v", result.Students)
	}
	if len(result.Errors) != 1 || result.Errors[0].Kind != models.ErrEmptyResult {
		t.Fatalf("errors = %v, want one %s", result.Errors, models.ErrEmptyResult)
	}
	if !result.Errors[0].Warning {
		t.Error("empty_result must be flagged as a warning")
	}
	if result.Failed() {
		t.Error("a warning alone must not mark the file failed")
	}
}

func TestExtractFile_deterministic(t *testing.T) {
	doc := rosterDoc([][]string{
		{"Lastname", "Firstname", "Gender"},
		{"Dela Cruz", "Juan", "M"},
	})
	svc := NewService(nil, table.DefaultConfig(), WithOpener(docOpener(doc)))

	first := svc.ExtractFile([]byte("x"), "same.pdf")
	second := svc.ExtractFile([]byte("x"), "same.pdf")
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated extraction differs: %+v vs %+v", first, second)
	}
}
