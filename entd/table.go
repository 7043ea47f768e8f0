package entd

import (
	"math"
	"strconv"
	"strings"
)

// Table holds the allow-listed columns of one source file as trimmed
// strings. An empty cell is a missing value. Tables are built with
// NewTable or ReadTable and are read-only afterwards.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
	index   map[string]int
}

// NewTable creates a table for the given columns.
func NewTable(name string, columns []string) *Table {
	t := &Table{Name: name, Columns: columns}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Has reports whether the table carries the column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Get returns the raw cell, or "" when the column is unknown.
func (t *Table) Get(row int, column string) string {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) || i >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][i]
}

// Float parses a numeric cell. Both "," and "." are accepted as decimal
// separator. ok is false for missing or malformed cells.
func (t *Table) Float(row int, column string) (float64, bool) {
	return ParseFloat(t.Get(row, column))
}

// FloatOr returns the numeric cell or def.
func (t *Table) FloatOr(row int, column string, def float64) float64 {
	if v, ok := t.Float(row, column); ok {
		return v
	}
	return def
}

// Int parses an integer cell; integral floats such as "3.0" are accepted.
func (t *Table) Int(row int, column string) (int64, bool) {
	return ParseInt(t.Get(row, column))
}

// IntOr returns the integer cell or def.
func (t *Table) IntOr(row int, column string, def int64) int64 {
	if v, ok := t.Int(row, column); ok {
		return v
	}
	return def
}

// Append adds a row; missing trailing cells are padded.
func (t *Table) Append(row []string) {
	if len(row) < len(t.Columns) {
		padded := make([]string, len(t.Columns))
		copy(padded, row)
		row = padded
	}
	t.Rows = append(t.Rows, row)
}

// ParseFloat parses a survey number.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseInt parses a survey integer or identifier.
func ParseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, true
	}
	f, ok := ParseFloat(s)
	if !ok || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
