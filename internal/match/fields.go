// Package match maps roster table headers to target fields and converts data
// rows into student records.
package match

import (
	"strings"

	"github.com/listahan/listahan/pkg/utils"
)

// Field is one of the five extracted attributes of a roster row.
type Field string

const (
	FieldLastname   Field = "lastname"
	FieldFirstname  Field = "firstname"
	FieldMiddlename Field = "middlename"
	FieldExtension  Field = "extension"
	FieldGender     Field = "gender"
)

// FieldOrder is the canonical matching order. Earlier fields win when a header
// cell could match more than one.
var FieldOrder = []Field{FieldLastname, FieldFirstname, FieldMiddlename, FieldExtension, FieldGender}

// AliasSet maps each field to the header text variants that identify it.
// Alias values are compared against normalized header cells.
type AliasSet map[Field][]string

// DefaultAliases returns the built-in header variants. Deployments can extend
// or replace these through the columns section of the config file.
func DefaultAliases() AliasSet {
	return AliasSet{
		FieldLastname:   {"lastname", "last name", "last_name", "surname"},
		FieldFirstname:  {"firstname", "first name", "first_name", "given name"},
		FieldMiddlename: {"middlename", "middle name", "middle_name", "mi", "m.i."},
		FieldExtension:  {"extension", "ext", "ext.", "name extension", "suffix"},
		FieldGender:     {"gender", "sex"},
	}
}

// Normalize lowercases s, trims it, collapses internal whitespace, and strips
// trailing punctuation ("Last Name:" -> "last name").
func Normalize(s string) string {
	s = utils.CollapseSpace(strings.ToLower(s))
	return strings.TrimRight(s, ".,:;!?")
}
