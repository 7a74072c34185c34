package match

import (
	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/pkg/utils"
)

// RecordFromRow converts one data row into a StudentRecord using the column
// mapping. Each mapped cell is trimmed and its internal whitespace collapsed;
// out-of-range indices read as blank. Accented letters, apostrophes, and
// hyphens pass through unmodified.
//
// The second return value is false when the row should be dropped: a record
// is kept only if lastname or firstname is non-blank after normalization.
// Dropped rows are not errors.
func RecordFromRow(row []string, mapping Mapping) (models.StudentRecord, bool) {
	var rec models.StudentRecord
	for idx, field := range mapping {
		if idx < 0 || idx >= len(row) {
			continue
		}
		value := utils.CollapseSpace(row[idx])
		switch field {
		case FieldLastname:
			rec.Lastname = value
		case FieldFirstname:
			rec.Firstname = value
		case FieldMiddlename:
			rec.Middlename = value
		case FieldExtension:
			rec.Extension = value
		case FieldGender:
			rec.Gender = value
		}
	}
	if rec.Lastname == "" && rec.Firstname == "" {
		return models.StudentRecord{}, false
	}
	return rec, true
}
