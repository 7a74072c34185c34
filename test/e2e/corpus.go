package e2e

import (
	"github.com/listahan/listahan/internal/document"
	"github.com/listahan/listahan/internal/models"
)

// RosterFixture pairs a synthetic roster document with the records its
// extraction must yield. FailKind is set for fixtures that must fail instead.
type RosterFixture struct {
	Name     string
	Doc      document.Document
	Expected []models.StudentRecord
	FailKind models.ErrorKind
}

// Corpus is the full set of roster fixtures.
type Corpus struct {
	Fixtures []RosterFixture
}

// TotalStudents sums the expected record count over all fixtures.
func (c *Corpus) TotalStudents() int {
	total := 0
	for _, f := range c.Fixtures {
		total += len(f.Expected)
	}
	return total
}

// BuildCorpus assembles roster layouts covering the shapes seen in real
// sign-in sheets: plain grids, extra bookkeeping columns, title lines,
// multi-page rosters with repeated headers, wrapped names, merged cells,
// and non-roster documents.
func BuildCorpus() *Corpus {
	return &Corpus{Fixtures: []RosterFixture{
		plainRoster(),
		wideRoster(),
		titledRoster(),
		multiPageRoster(),
		wrappedRoster(),
		mergedCellRoster(),
		proseDocument(),
	}}
}

func plainRoster() RosterFixture {
	return RosterFixture{
		Name: "plain",
		Doc: &document.MemoryDocument{Pages: [][]document.Word{layoutRows([][]string{
			{"Lastname", "Firstname", "Gender"},
			{"Dela Cruz", "Juan", "M"},
			{"Reyes", "Ana", "F"},
		})}},
		Expected: []models.StudentRecord{
			{Lastname: "Dela Cruz", Firstname: "Juan", Gender: "M"},
			{Lastname: "Reyes", Firstname: "Ana", Gender: "F"},
		},
	}
}

// wideRoster carries the bookkeeping columns sign-in sheets usually add;
// only the five known fields come back.
func wideRoster() RosterFixture {
	return RosterFixture{
		Name: "wide",
		Doc: &document.MemoryDocument{Pages: [][]document.Word{layoutRows([][]string{
			{"No", "StudentID", "Lastname", "Firstname", "Middlename", "Extension", "Dept", "Course", "Gender", "TimeIn"},
			{"1", "2021-00123", "Santos", "Maria", "Lim", "", "CCS", "BSIT", "F", "08:01"},
			{"2", "2021-00456", "Garcia", "Pedro", "", "Jr", "CCS", "BSCS", "M", "08:04"},
		})}},
		Expected: []models.StudentRecord{
			{Lastname: "Santos", Firstname: "Maria", Middlename: "Lim", Gender: "F"},
			{Lastname: "Garcia", Firstname: "Pedro", Extension: "Jr", Gender: "M"},
		},
	}
}

func titledRoster() RosterFixture {
	return RosterFixture{
		Name: "titled",
		Doc: &document.MemoryDocument{Pages: [][]document.Word{layoutRows([][]string{
			{"", "Attendance", ""},
			{"Lastname", "Firstname", "Gender"},
			{"Lopez", "Carmen", "F"},
		})}},
		Expected: []models.StudentRecord{
			{Lastname: "Lopez", Firstname: "Carmen", Gender: "F"},
		},
	}
}

func multiPageRoster() RosterFixture {
	rows := namedRoster(4)
	return RosterFixture{
		Name: "multipage",
		Doc: &document.MemoryDocument{Pages: [][]document.Word{
			layoutRows(rows[:3]),
			// Page two repeats the header; it must not become a record.
			layoutRows(append([][]string{rows[0]}, rows[3:]...)),
		}},
		Expected: []models.StudentRecord{
			{Lastname: "Lastname0", Firstname: "Firstname0", Gender: "M"},
			{Lastname: "Lastname1", Firstname: "Firstname1", Gender: "F"},
			{Lastname: "Lastname2", Firstname: "Firstname2", Gender: "M"},
			{Lastname: "Lastname3", Firstname: "Firstname3", Gender: "F"},
		},
	}
}

// wrappedRoster breaks one long surname across two physical lines.
func wrappedRoster() RosterFixture {
	words := []document.Word{
		word("Lastname", 0, 700), word("Firstname", 1, 700), word("Gender", 2, 700),
		word("Dela", 0, 682), word("Juan", 1, 682), word("M", 2, 682),
		word("Cruz", 0, 674),
		word("Reyes", 0, 656), word("Ana", 1, 656), word("F", 2, 656),
	}
	return RosterFixture{
		Name: "wrapped",
		Doc:  &document.MemoryDocument{Pages: [][]document.Word{words}},
		Expected: []models.StudentRecord{
			{Lastname: "Dela Cruz", Firstname: "Juan", Gender: "M"},
			{Lastname: "Reyes", Firstname: "Ana", Gender: "F"},
		},
	}
}

// mergedCellRoster spans one cell across two columns; the value lands on the
// leftmost covered column.
func mergedCellRoster() RosterFixture {
	words := []document.Word{
		word("Lastname", 0, 700), word("Firstname", 1, 700), word("Gender", 2, 700),
		word("Tan", 0, 682), word("Ramon", 1, 682), word("M", 2, 682),
		{Text: "Villanueva-Santos, Bea", X: rosterColumns[0], Y: 664, W: 110, H: 10},
		word("F", 2, 664),
	}
	return RosterFixture{
		Name: "merged",
		Doc:  &document.MemoryDocument{Pages: [][]document.Word{words}},
		Expected: []models.StudentRecord{
			{Lastname: "Tan", Firstname: "Ramon", Gender: "M"},
			{Lastname: "Villanueva-Santos, Bea", Gender: "F"},
		},
	}
}

func proseDocument() RosterFixture {
	return RosterFixture{
		Name: "prose",
		Doc: &document.MemoryDocument{Pages: [][]document.Word{{
			{Text: "Certificate of Appearance", X: 200, Y: 700, W: 125, H: 12},
		}}},
		FailKind: models.ErrNoTableFound,
	}
}
