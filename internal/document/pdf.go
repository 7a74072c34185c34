package document

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ledongthuc/pdf"
)

// Glyph runs closer together than this fraction of the font size belong to
// the same word; wider gaps separate words (and table cells).
const wordGapRatio = 0.3

// Fragments within this many points vertically sit on the same text line.
const lineTolerance = 2.0

// pdfDocument adapts a ledongthuc/pdf reader to the Document interface.
type pdfDocument struct {
	reader *pdf.Reader
}

// OpenPDF parses content as a PDF. The returned Document reads positioned
// words per page. An unparseable byte stream returns an error.
func OpenPDF(content []byte) (Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("open PDF: empty file")
	}
	r, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("open PDF: %w", err)
	}
	return &pdfDocument{reader: r}, nil
}

func (d *pdfDocument) NumPages() int {
	return d.reader.NumPage()
}

// Words reads the page content and merges adjacent glyph runs into words.
// ledongthuc/pdf panics on some malformed content streams, so the read is
// wrapped in a recover that surfaces the panic as an error.
func (d *pdfDocument) Words(pageNum int) (words []Word, err error) {
	defer func() {
		if r := recover(); r != nil {
			words = nil
			err = fmt.Errorf("read page %d: %v", pageNum, r)
		}
	}()

	page := d.reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}
	content := page.Content()
	return mergeFragments(content.Text), nil
}

// mergeFragments joins per-glyph text items into words. Items are grouped into
// lines by Y, ordered by X, and concatenated while the horizontal gap between
// consecutive items stays below wordGapRatio of the font size.
func mergeFragments(texts []pdf.Text) []Word {
	items := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if t.S == "" || t.S == "\n" {
			continue
		}
		items = append(items, t)
	}
	if len(items) == 0 {
		return nil
	}

	sort.Slice(items, func(i, j int) bool {
		if diff := items[i].Y - items[j].Y; diff > lineTolerance || diff < -lineTolerance {
			return items[i].Y > items[j].Y
		}
		return items[i].X < items[j].X
	})

	var words []Word
	current := Word{
		Text: items[0].S,
		X:    items[0].X,
		Y:    items[0].Y,
		W:    items[0].W,
		H:    fontHeight(items[0]),
	}
	for _, t := range items[1:] {
		sameLine := t.Y > current.Y-lineTolerance && t.Y < current.Y+lineTolerance
		gap := t.X - (current.X + current.W)
		maxGap := fontHeight(t) * wordGapRatio
		if sameLine && gap <= maxGap {
			current.Text += t.S
			current.W = t.X + t.W - current.X
			continue
		}
		words = append(words, current)
		current = Word{Text: t.S, X: t.X, Y: t.Y, W: t.W, H: fontHeight(t)}
	}
	words = append(words, current)
	return words
}

func fontHeight(t pdf.Text) float64 {
	if t.FontSize > 0 {
		return t.FontSize
	}
	return 12.0
}
