package frame

import (
	"encoding/json"
	"fmt"
)

// Kind identifies which variant a CellValue holds.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindDate
)

// String returns the lowercase name of the kind, as used in JSON output.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CellValue is a closed variant over the typed payloads a cell can hold.
// Exactly one payload field is meaningful, selected by Kind. Construct
// values with IntValue, FloatValue, TextValue, or DateValue.
type CellValue struct {
	Kind  Kind
	Int   int32
	Float float64
	Text  string
	Date  Date
}

// IntValue returns a CellValue holding a 32-bit signed integer.
func IntValue(v int32) CellValue { return CellValue{Kind: KindInt, Int: v} }

// FloatValue returns a CellValue holding a 64-bit float.
func FloatValue(v float64) CellValue { return CellValue{Kind: KindFloat, Float: v} }

// TextValue returns a CellValue holding a string.
func TextValue(v string) CellValue { return CellValue{Kind: KindText, Text: v} }

// DateValue returns a CellValue holding a calendar date.
func DateValue(v Date) CellValue { return CellValue{Kind: KindDate, Date: v} }

// Cell wraps an optional CellValue. A nil Value is a legitimate terminal
// state (empty or unclassifiable cell), not an error.
type Cell struct {
	Value *CellValue
}

// HasValue reports whether the cell holds a typed value.
func (c Cell) HasValue() bool { return c.Value != nil }

// MarshalJSON renders the cell as {"kind":..., "value":...}, or null for a
// cell with no value. Dates render in ISO 8601 form.
func (c Cell) MarshalJSON() ([]byte, error) {
	if c.Value == nil {
		return []byte("null"), nil
	}

	out := struct {
		Kind  string `json:"kind"`
		Value any    `json:"value"`
	}{Kind: c.Value.Kind.String()}

	switch c.Value.Kind {
	case KindInt:
		out.Value = c.Value.Int
	case KindFloat:
		out.Value = c.Value.Float
	case KindText:
		out.Value = c.Value.Text
	case KindDate:
		out.Value = c.Value.Date.String()
	default:
		return nil, fmt.Errorf("unknown cell kind %d", c.Value.Kind)
	}

	return json.Marshal(out)
}

// Row is an ordered sequence of cells. Rows in the same table may have
// different lengths; no padding to a common width is ever applied.
type Row []Cell

// Table is an ordered sequence of rows, built in a single pass and treated
// as immutable by downstream consumers. A re-read replaces the whole table,
// never individual cells.
type Table struct {
	Rows []Row `json:"rows"`
}

// RowCount returns the number of rows in the table.
func (t *Table) RowCount() int { return len(t.Rows) }

// CellCount returns the total number of cells across all rows.
func (t *Table) CellCount() int {
	n := 0
	for _, row := range t.Rows {
		n += len(row)
	}
	return n
}
