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

const (
	columnGap = "  "
	ellipsis  = "…"
)

// Format returns the rows padded according to the widest entry in each
// column. Widths are measured in terminal cells, so wide runes line up.
// Trailing empty cells do not leave padding behind.
func Format(rows [][]string, alignments []Alignment) []string {
	return FormatWithin(rows, alignments, 0)
}

// FormatWithin is Format with the first column shrunk, and its cells
// truncated, so that no row is wider than maxWidth. A non-positive maxWidth
// disables the limit.
func FormatWithin(rows [][]string, alignments []Alignment, maxWidth int) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	if maxWidth > 0 && len(widths) > 0 {
		total := 0
		for c, w := range widths {
			if c > 0 {
				total += len(columnGap)
			}
			total += w
		}
		if over := total - maxWidth; over > 0 {
			widths[0] -= over
			if widths[0] < 1 {
				widths[0] = 1
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		last := len(row) - 1
		for last >= 0 && row[last] == "" {
			last--
		}
		var b strings.Builder
		for c := 0; c <= last; c++ {
			cell := row[c]
			if c > 0 {
				b.WriteString(columnGap)
			}
			if runewidth.StringWidth(cell) > widths[c] {
				cell = runewidth.Truncate(cell, widths[c], ellipsis)
			}
			pad := widths[c] - runewidth.StringWidth(cell)
			if c < len(alignments) && alignments[c] == AlignRight {
				writeSpaces(&b, pad)
				b.WriteString(cell)
				continue
			}
			b.WriteString(cell)
			if c < last {
				writeSpaces(&b, pad)
			}
		}
		out[i] = b.String()
	}
	return out
}

func columnWidths(rows [][]string) []int {
	count := 0
	for _, row := range rows {
		if len(row) > count {
			count = len(row)
		}
	}
	widths := make([]int, count)
	for _, row := range rows {
		for c, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}
	return widths
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
