// Package document abstracts a paged document as positioned words, so the
// table locator can run against real PDFs or synthetic in-memory pages.
package document

// Word is one positioned text fragment on a page, in PDF user-space points.
// Y grows upward, so the top of the page has the largest Y.
type Word struct {
	Text string
	X    float64 // left edge
	Y    float64 // baseline
	W    float64 // advance width
	H    float64 // font size, used as a line-height approximation
}

// Document is a read-only paged document. Pages are numbered from 1.
// Re-reading a page yields the same words.
type Document interface {
	NumPages() int
	// Words returns the positioned words of the page in no guaranteed order.
	Words(page int) ([]Word, error)
}

// MemoryDocument is an in-memory Document used by tests and fixtures.
type MemoryDocument struct {
	Pages [][]Word
}

// NumPages returns the page count.
func (d *MemoryDocument) NumPages() int { return len(d.Pages) }

// Words returns the words of the given 1-based page.
func (d *MemoryDocument) Words(page int) ([]Word, error) {
	if page < 1 || page > len(d.Pages) {
		return nil, nil
	}
	return d.Pages[page-1], nil
}
