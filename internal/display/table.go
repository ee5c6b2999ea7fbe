package display

import (
	"strings"

	"github.com/gosuri/uitable"
	"github.com/mattn/go-runewidth"
)

// Table renders an aligned text table with optional color support.
type Table struct {
	headers []string
	rows    [][]string
	// highlightRow is the 0-based row index to highlight (typically "today"). -1 = none.
	highlightRow int
	rightAlign   []int
}

// NewTable creates a new table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:      headers,
		highlightRow: -1,
	}
}

// AddRow appends a row of values. The number of values should match the number of headers.
func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow sets which row index (0-based) should be highlighted.
func (t *Table) SetHighlightRow(idx int) {
	t.highlightRow = idx
}

// RightAlign right-aligns column col, e.g. for day numbers.
func (t *Table) RightAlign(col int) {
	t.rightAlign = append(t.rightAlign, col)
}

// Render produces the formatted table string with leading indent.
//
// Cells are laid out plain and styled per line afterwards so escape codes
// never count toward column widths.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(toCells(t.headers, len(t.headers))...)
	for _, row := range t.rows {
		tbl.AddRow(toCells(row, len(t.headers))...)
	}
	for _, col := range t.rightAlign {
		tbl.RightAlign(col)
	}

	lines := strings.Split(tbl.String(), "\n")

	var sb strings.Builder
	sb.WriteString("  " + Bold(lines[0]) + "\n")

	// Separator row using Unicode box-drawing dashes.
	sb.WriteString(Dim("  "+strings.Repeat("─", runewidth.StringWidth(lines[0]))) + "\n")

	for i, line := range lines[1:] {
		if i == t.highlightRow {
			sb.WriteString("  " + Accent(line) + "\n")
		} else {
			sb.WriteString("  " + line + "\n")
		}
	}

	return sb.String()
}

// toCells pads or truncates values to n columns.
func toCells(values []string, n int) []interface{} {
	cells := make([]interface{}, n)
	for i := range cells {
		cells[i] = ""
		if i < len(values) {
			cells[i] = values[i]
		}
	}
	return cells
}
