// Package cli provides CLI utilities for Listahan.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/listahan/listahan/internal/models"
	"github.com/listahan/listahan/pkg/utils"
)

// maxMessageLen caps error message length in text output.
const maxMessageLen = 200

// OutputFormat is the format for extraction result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates a format flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case OutputText, OutputJSON:
		return OutputFormat(s), nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// WriteBatchResults writes a batch extraction result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteBatchResults(w io.Writer, batch *models.BatchResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batch)
	default:
		writeBatchText(w, batch)
		return nil
	}
}

func writeBatchText(w io.Writer, batch *models.BatchResult) {
	for _, f := range batch.Files {
		writeOneFile(w, f)
	}
	fmt.Fprintf(w, "total: %d student(s) from %d file(s)\n", batch.TotalStudents, len(batch.Files))
}

func writeOneFile(w io.Writer, f *models.FileResult) {
	fmt.Fprintf(w, "%s: %d student(s)\n", f.SourceFile, len(f.Students))
	for _, s := range f.Students {
		if s.Gender != "" {
			fmt.Fprintf(w, "  %s (%s)\n", s.FullName(), s.Gender)
		} else {
			fmt.Fprintf(w, "  %s\n", s.FullName())
		}
	}
	for _, e := range f.Errors {
		marker := "!"
		if e.Warning {
			marker = "~"
		}
		fmt.Fprintf(w, "  %s %s: %s\n", marker, e.Kind, utils.Truncate(e.Message, maxMessageLen))
	}
}
