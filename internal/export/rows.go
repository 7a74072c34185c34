// Package export renders batch extraction results as spreadsheet rows, either
// into an .xlsx workbook or a remote Google Sheet.
package export

import "github.com/listahan/listahan/internal/models"

// Headers is the fixed column set every export path writes, in order.
var Headers = []string{
	"Full Name",
	"Email",
	"Gender",
	"Beneficiary",
	"Age Range",
	"Affiliation Type",
	"Affiliation Name",
}

// Rows flattens per-file results into export rows. Full Name is derived from
// the record; Gender comes from the PDF; the remaining columns take the
// batch-wide defaults. Row order follows file order, then record order.
func Rows(files []*models.FileResult, defaults models.ExportDefaults) [][]string {
	var rows [][]string
	for _, f := range files {
		for _, s := range f.Students {
			rows = append(rows, []string{
				s.FullName(),
				defaults.Email,
				s.Gender,
				defaults.Beneficiary,
				defaults.AgeRange,
				defaults.AffiliationType,
				defaults.AffiliationName,
			})
		}
	}
	return rows
}
