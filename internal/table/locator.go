// Package table locates tabular regions in paged documents and returns them
// as logical rows of cell text.
package table

import (
	"sort"
	"strings"

	"github.com/listahan/listahan/internal/document"
)

// Config holds the geometric thresholds for table detection, in points.
type Config struct {
	// RowTolerance groups words whose baselines differ by at most this into one text line.
	RowTolerance float64
	// ColTolerance clusters word left edges into column boundaries.
	ColTolerance float64
	// BlockGap is the vertical gap that separates two table-like regions.
	BlockGap float64
	// WrapRatio marks a line as a wrapped continuation of the previous row
	// when its gap to that row is below WrapRatio times the widest line gap
	// in its region.
	WrapRatio float64
	// MinRows and MinCols are the smallest grid considered a table.
	MinRows int
	MinCols int
}

// DefaultConfig returns thresholds that work for common roster layouts.
func DefaultConfig() Config {
	return Config{
		RowTolerance: 3.0,
		ColTolerance: 9.0,
		BlockGap:     22.0,
		WrapRatio:    0.55,
		MinRows:      2,
		MinCols:      2,
	}
}

// Locator scans a document's pages for the attendance table. It depends only
// on the document capability and a header probe, so it can run against
// synthetic pages in tests.
type Locator struct {
	cfg Config
	// headerScore reports how many target fields a candidate header row
	// resolves. Candidates whose first rows resolve none are never selected,
	// which keeps small unrelated grids (footers, signature boxes) from
	// shadowing the real table.
	headerScore func(cells []string) int
}

// NewLocator builds a Locator with the given thresholds and header probe.
func NewLocator(cfg Config, headerScore func(cells []string) int) *Locator {
	return &Locator{cfg: cfg, headerScore: headerScore}
}

// Locate returns the logical rows of the best table-like region, header row
// first, with continuation rows from later pages appended. Rows are ordered
// sequences of cell text; empty cells are "". An empty result means no page
// yielded a usable table — not an error by itself.
//
// Re-scanning the same document yields the same rows.
func (l *Locator) Locate(doc document.Document) ([][]string, error) {
	var rows [][]string
	primaryCols := 0

	for page := 1; page <= doc.NumPages(); page++ {
		words, err := doc.Words(page)
		if err != nil {
			return nil, err
		}
		candidates := l.candidates(words)
		if len(candidates) == 0 {
			continue
		}

		if primaryCols == 0 {
			best := l.selectPrimary(candidates)
			if best == nil {
				continue
			}
			primaryCols = best.cols
			rows = append(rows, best.rows...)
			continue
		}

		// Later pages: continuation rows of the already-located table. A
		// repeated header is dropped; only the first header row is matched.
		for _, c := range candidates {
			repeated := l.headerScore(c.rows[0]) >= 2
			if c.cols != primaryCols && !repeated {
				continue
			}
			data := c.rows
			if repeated {
				data = data[1:]
			}
			rows = append(rows, data...)
		}
	}
	return rows, nil
}

// candidate is one table-like region: a grid of logical rows.
type candidate struct {
	rows [][]string
	cols int
}

// selectPrimary picks the candidate with the most columns among those whose
// leading rows resolve at least one target field.
func (l *Locator) selectPrimary(candidates []*candidate) *candidate {
	var best *candidate
	for _, c := range candidates {
		score := l.headerScore(c.rows[0])
		if score == 0 && len(c.rows) > 2 {
			// The first line may be a title above the real header.
			score = l.headerScore(c.rows[1])
		}
		if score == 0 {
			continue
		}
		if best == nil || c.cols > best.cols {
			best = c
		}
	}
	return best
}

// candidates detects table-like regions on one page: words are grouped into
// text lines, lines into vertically contiguous blocks, and each block large
// enough is converted into a cell grid.
func (l *Locator) candidates(words []document.Word) []*candidate {
	lines := l.groupLines(words)
	var out []*candidate
	for _, block := range l.groupBlocks(lines) {
		if c := l.gridFromBlock(block); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// textLine is one physical line of words, sorted left to right.
type textLine struct {
	y     float64
	words []document.Word
}

// groupLines clusters words by baseline into physical lines, top of page first.
func (l *Locator) groupLines(words []document.Word) []textLine {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]document.Word, len(words))
	copy(sorted, words)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []textLine
	current := textLine{y: sorted[0].Y, words: []document.Word{sorted[0]}}
	for _, w := range sorted[1:] {
		if current.y-w.Y <= l.cfg.RowTolerance {
			current.words = append(current.words, w)
			continue
		}
		lines = append(lines, current)
		current = textLine{y: w.Y, words: []document.Word{w}}
	}
	lines = append(lines, current)

	for i := range lines {
		sort.Slice(lines[i].words, func(a, b int) bool {
			return lines[i].words[a].X < lines[i].words[b].X
		})
		lines[i].words = coalesceWords(lines[i].words, l.cfg.ColTolerance)
	}
	return lines
}

// coalesceWords joins adjacent words on one line whose horizontal gap is at
// most maxGap, so a multi-word cell ("Dela" "Cruz") reads as one word and
// does not spawn its own column boundary. Columns packed tighter than maxGap
// would merge too; roster tables keep wider gutters than word spacing.
func coalesceWords(words []document.Word, maxGap float64) []document.Word {
	if len(words) == 0 {
		return words
	}
	out := []document.Word{words[0]}
	for _, w := range words[1:] {
		prev := &out[len(out)-1]
		if w.X-(prev.X+prev.W) <= maxGap {
			prev.Text += " " + w.Text
			prev.W = w.X + w.W - prev.X
			continue
		}
		out = append(out, w)
	}
	return out
}

// groupBlocks splits lines into vertically contiguous regions. A gap larger
// than BlockGap starts a new region.
func (l *Locator) groupBlocks(lines []textLine) [][]textLine {
	var blocks [][]textLine
	var current []textLine
	for i, line := range lines {
		if i > 0 && lines[i-1].y-line.y > l.cfg.BlockGap {
			blocks = append(blocks, current)
			current = nil
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// gridFromBlock converts a block of lines into a cell grid, or nil when the
// block is not table-like. Column boundaries come from clustering word left
// edges across the block.
func (l *Locator) gridFromBlock(block []textLine) *candidate {
	if len(block) < l.cfg.MinRows {
		return nil
	}
	cols := l.columnBoundaries(block)
	if len(cols) < l.cfg.MinCols {
		return nil
	}

	wraps := l.markWrappedLines(block)

	var rows [][]string
	for i, line := range block {
		cells := make([]string, len(cols))
		for _, w := range line.words {
			ci := nearestColumn(cols, w.X)
			if cells[ci] == "" {
				cells[ci] = w.Text
			} else {
				cells[ci] += " " + w.Text
			}
		}
		if wraps[i] && len(rows) > 0 {
			// Wrapped physical line: coalesce into the previous logical row,
			// joining per-cell text with a single space.
			prev := rows[len(rows)-1]
			for ci, text := range cells {
				if text == "" {
					continue
				}
				if prev[ci] == "" {
					prev[ci] = text
				} else {
					prev[ci] += " " + text
				}
			}
			continue
		}
		rows = append(rows, cells)
	}
	if len(rows) < l.cfg.MinRows {
		return nil
	}
	return &candidate{rows: rows, cols: len(cols)}
}

// columnBoundaries clusters word left edges into column positions. Every
// cluster becomes a boundary, so a column blank in most rows (a suffix column,
// say) still exists as long as its header cell does. The returned positions
// are sorted ascending.
func (l *Locator) columnBoundaries(block []textLine) []float64 {
	var edges []float64
	for _, line := range block {
		for _, w := range line.words {
			edges = append(edges, w.X)
		}
	}
	if len(edges) == 0 {
		return nil
	}
	sort.Float64s(edges)

	var cols []float64
	clusterStart := edges[0]
	sum := edges[0]
	count := 1
	for _, x := range edges[1:] {
		if x-clusterStart <= l.cfg.ColTolerance {
			sum += x
			count++
			continue
		}
		cols = append(cols, sum/float64(count))
		clusterStart = x
		sum = x
		count = 1
	}
	cols = append(cols, sum/float64(count))
	return cols
}

// nearestColumn returns the index of the boundary closest to x. A cell
// spanning several columns starts at its leftmost boundary, so merged cells
// land on the leftmost covered index and later indices stay empty.
func nearestColumn(cols []float64, x float64) int {
	best := 0
	bestDist := abs(cols[0] - x)
	for i := 1; i < len(cols); i++ {
		if d := abs(cols[i] - x); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// markWrappedLines flags physical lines that continue the previous logical
// row. The widest gap in a block is always a genuine row separation (wrap
// gaps are smaller by construction), so a line much closer to the one above
// it than that is a wrapped fragment. An average would not do here: with few
// lines the wrap gap itself drags it down until the wrap goes undetected.
func (l *Locator) markWrappedLines(block []textLine) []bool {
	wraps := make([]bool, len(block))
	if len(block) < 2 {
		return wraps
	}
	widest := 0.0
	for i := 1; i < len(block); i++ {
		if g := block[i-1].y - block[i].y; g > widest {
			widest = g
		}
	}
	if widest <= 0 {
		return wraps
	}
	for i := 1; i < len(block); i++ {
		if block[i-1].y-block[i].y < l.cfg.WrapRatio*widest {
			wraps[i] = true
		}
	}
	return wraps
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// RowIsBlank reports whether every cell in the row is blank after trimming.
func RowIsBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
