// Package models defines core data structures for extracted records and batch results.
package models

import "strings"

// StudentRecord is one extracted attendance row. Every field is optional;
// blank means the column was absent or empty in the source table.
type StudentRecord struct {
	Lastname   string `json:"lastname"`
	Firstname  string `json:"firstname"`
	Middlename string `json:"middlename"`
	Extension  string `json:"extension"`
	Gender     string `json:"gender"`
}

// FullName builds "Lastname, Firstname Middlename Extension" from the record.
// First/middle/extension are joined with single spaces, skipping blanks. The
// comma appears only when both the lastname and the joined remainder are
// non-blank; otherwise whichever side is non-blank is returned alone.
func (r StudentRecord) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Firstname, r.Middlename, r.Extension} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	rest := strings.Join(parts, " ")
	if r.Lastname != "" && rest != "" {
		return r.Lastname + ", " + rest
	}
	if r.Lastname != "" {
		return r.Lastname
	}
	return rest
}
