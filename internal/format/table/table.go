package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how a single column is laid out. MaxWidth of zero leaves
// the column unbounded; wider cells are truncated with an ellipsis.
type Column struct {
	Align    Alignment
	MaxWidth int
}

const ellipsis = "…"

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := 0
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, colCount)
		for c := 0; c < colCount; c++ {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			if c < len(columns) && columns[c].MaxWidth > 0 {
				cell = runewidth.Truncate(cell, columns[c].MaxWidth, ellipsis)
			}
			cells[r][c] = cell
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	out := make([]string, len(cells))
	for r, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if c < len(columns) && columns[c].Align == AlignRight {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < len(row)-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)))
			}
		}
		out[r] = b.String()
	}
	return out
}
