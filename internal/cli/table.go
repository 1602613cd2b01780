package cli

import (
	"strings"
	"unicode/utf8"
)

// Alignment controls how a column's cells are padded.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table represents a simple table formatter with dynamic column widths.
// Cells may contain ANSI escape sequences; they do not count towards width.
type Table struct {
	headers []string
	align   []Alignment
	rows    [][]string
	padding int
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers: headers,
		align:   make([]Alignment, len(headers)),
		rows:    make([][]string, 0),
		padding: 2, // 2 spaces between columns
	}
}

// SetAlignment sets the alignment of a column. Out of range indexes are ignored.
func (t *Table) SetAlignment(colIndex int, a Alignment) {
	if colIndex >= 0 && colIndex < len(t.align) {
		t.align[colIndex] = a
	}
}

// AddRow adds a row to the table, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	newRow := make([]string, len(t.headers))
	copy(newRow, row)
	t.rows = append(t.rows, newRow)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(t.headers))
	for i, h := range t.headers {
		colWidths[i] = visibleWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			colWidths[i] = max(colWidths[i], visibleWidth(cell))
		}
	}

	var result strings.Builder
	gap := strings.Repeat(" ", t.padding)

	t.writeLine(&result, t.headers, colWidths, gap)

	sepParts := make([]string, len(t.headers))
	for i, w := range colWidths {
		sepParts[i] = strings.Repeat("-", w)
	}
	result.WriteString(strings.Join(sepParts, gap))
	result.WriteString("\n")

	for _, row := range t.rows {
		t.writeLine(&result, row, colWidths, gap)
	}

	return result.String()
}

func (t *Table) writeLine(b *strings.Builder, cells []string, widths []int, gap string) {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if t.align[i] == AlignRight {
			parts[i] = padLeft(cell, widths[i])
		} else {
			parts[i] = padRight(cell, widths[i])
		}
	}
	// Trailing padding on the last column is noise in terminals and files.
	b.WriteString(strings.TrimRight(strings.Join(parts, gap), " "))
	b.WriteString("\n")
}

// padRight pads a string with spaces on the right to reach the desired width.
// If the string is already longer than or equal to the width, it is returned unchanged.
func padRight(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// padLeft pads a string with spaces on the left to reach the desired width.
func padLeft(s string, width int) string {
	if n := visibleWidth(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// visibleWidth counts the runes of s that are not part of an ANSI CSI
// escape sequence.
func visibleWidth(s string) int {
	width := 0
	for i := 0; i < len(s); {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			// Skip parameters up to the final byte in 0x40-0x7e.
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		width++
	}
	return width
}
