package export

import (
	"context"
	"fmt"

	"github.com/listahan/listahan/internal/models"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsConfig holds the Google Sheets destination and credentials.
type SheetsConfig struct {
	// CredentialsPath points to a service account JSON key file.
	CredentialsPath string
	// SpreadsheetID selects an existing spreadsheet. When empty, a new
	// spreadsheet named SpreadsheetName is created.
	SpreadsheetID   string
	SpreadsheetName string
	WorksheetName   string
}

// PushToGoogleSheet writes the batch into a Google Sheet: header plus one row
// per record, replacing any previous content of the worksheet, with the header
// row bolded. Returns the spreadsheet URL.
func PushToGoogleSheet(ctx context.Context, cfg SheetsConfig, files []*models.FileResult, defaults models.ExportDefaults) (string, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return "", fmt.Errorf("create sheets client: %w", err)
	}

	worksheet := cfg.WorksheetName
	if worksheet == "" {
		worksheet = "Sheet1"
	}

	spreadsheetID := cfg.SpreadsheetID
	var url string
	var sheetID int64
	if spreadsheetID == "" {
		title := cfg.SpreadsheetName
		if title == "" {
			title = "Attendance Export"
		}
		created, err := svc.Spreadsheets.Create(&sheets.Spreadsheet{
			Properties: &sheets.SpreadsheetProperties{Title: title},
			Sheets: []*sheets.Sheet{
				{Properties: &sheets.SheetProperties{Title: worksheet}},
			},
		}).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("create spreadsheet: %w", err)
		}
		spreadsheetID = created.SpreadsheetId
		url = created.SpreadsheetUrl
		sheetID = created.Sheets[0].Properties.SheetId
	} else {
		existing, err := svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("open spreadsheet: %w", err)
		}
		url = existing.SpreadsheetUrl
		found := false
		for _, sh := range existing.Sheets {
			if sh.Properties.Title == worksheet {
				sheetID = sh.Properties.SheetId
				found = true
				break
			}
		}
		if !found {
			reply, err := svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
				Requests: []*sheets.Request{
					{AddSheet: &sheets.AddSheetRequest{
						Properties: &sheets.SheetProperties{Title: worksheet},
					}},
				},
			}).Context(ctx).Do()
			if err != nil {
				return "", fmt.Errorf("add worksheet %q: %w", worksheet, err)
			}
			sheetID = reply.Replies[0].AddSheet.Properties.SheetId
		}
	}

	values := make([][]interface{}, 0, 1)
	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	values = append(values, header)
	for _, row := range Rows(files, defaults) {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}

	if _, err := svc.Spreadsheets.Values.Clear(spreadsheetID, worksheet, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("clear worksheet: %w", err)
	}
	if _, err := svc.Spreadsheets.Values.Update(spreadsheetID, worksheet, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("write rows: %w", err)
	}

	_, err = svc.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{SheetId: sheetID, StartRowIndex: 0, EndRowIndex: 1},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{TextFormat: &sheets.TextFormat{Bold: true}},
				},
				Fields: "userEnteredFormat.textFormat.bold",
			}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("format header: %w", err)
	}

	return url, nil
}
