// Package e2e provides end-to-end tests; this file lays out synthetic roster
// pages as positioned words, the same shape a parsed PDF page produces.
package e2e

import (
	"fmt"

	"github.com/listahan/listahan/internal/document"
)

// rosterColumns are the column left edges used by fixture pages, far enough
// apart that neighboring cells never merge.
var rosterColumns = []float64{40, 130, 230, 330, 430, 530, 630, 730, 830, 930}

// pageTop is the baseline of the first fixture row.
const pageTop = 700.0

// rowPitch is the vertical distance between fixture rows.
const rowPitch = 18.0

// layoutRows converts rows of cell text into positioned words, one row every
// rowPitch points downward from pageTop. Empty cells produce no word.
func layoutRows(rows [][]string) []document.Word {
	var words []document.Word
	y := pageTop
	for _, row := range rows {
		for ci, cell := range row {
			if cell == "" {
				continue
			}
			words = append(words, document.Word{
				Text: cell,
				X:    rosterColumns[ci],
				Y:    y,
				W:    float64(len(cell)) * 5,
				H:    10,
			})
		}
		y -= rowPitch
	}
	return words
}

// word places one cell at a column and baseline.
func word(text string, col int, y float64) document.Word {
	return document.Word{
		Text: text,
		X:    rosterColumns[col],
		Y:    y,
		W:    float64(len(text)) * 5,
		H:    10,
	}
}

// namedRoster generates a header plus n data rows with predictable names
// (Lastname0/Firstname0, Lastname1/Firstname1, ...), alternating gender.
func namedRoster(n int) [][]string {
	rows := [][]string{{"Lastname", "Firstname", "Gender"}}
	for i := 0; i < n; i++ {
		gender := "M"
		if i%2 == 1 {
			gender = "F"
		}
		rows = append(rows, []string{
			fmt.Sprintf("Lastname%d", i),
			fmt.Sprintf("Firstname%d", i),
			gender,
		})
	}
	return rows
}
