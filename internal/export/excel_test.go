package export

import (
	"testing"

	"github.com/listahan/listahan/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	files := []*models.FileResult{{
		SourceFile: "roster.pdf",
		Students: []models.StudentRecord{
			{Lastname: "Dela Cruz", Firstname: "Juan", Middlename: "Santos", Gender: "M"},
			{Lastname: "Reyes", Firstname: "Ana", Gender: "F"},
		},
	}}
	defaults := models.ExportDefaults{Email: "team@example.org", Beneficiary: "Youth"}

	buf, err := WriteWorkbook(files, defaults)
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}

	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	if idx, err := wb.GetSheetIndex(SheetName); err != nil || idx < 0 {
		t.Fatalf("sheet %q missing (idx=%d, err=%v)", SheetName, idx, err)
	}

	rows, err := wb.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2", len(rows))
	}
	for i, h := range Headers {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "Dela Cruz, Juan Santos" || rows[1][2] != "M" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "Reyes, Ana" || rows[2][1] != "team@example.org" || rows[2][3] != "Youth" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestWriteWorkbook_emptyBatch(t *testing.T) {
	buf, err := WriteWorkbook(nil, models.ExportDefaults{})
	if err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	wb, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer wb.Close()

	rows, err := wb.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d", len(rows))
	}
}
