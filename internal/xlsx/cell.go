package xlsx

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

// rawCell implements frame.RawCell over an excelize raw value. The zero
// value behaves as an empty cell.
//
// xlsx stores every numeric cell as text in the file, so the integer and
// float probes parse the raw payload: "5" extracts as an integer, "5.5"
// only as a float. Cells styled with a date number format suppress the
// numeric probes and report through DateTime instead.
type rawCell struct {
	value string
	typ   excelize.CellType
	date  bool
}

// isNumeric reports whether the stored type can carry a numeric payload.
// Formula cells expose their cached result as the raw value.
func (c rawCell) isNumeric() bool {
	switch c.typ {
	case excelize.CellTypeNumber, excelize.CellTypeFormula, excelize.CellTypeUnset:
		return c.value != ""
	default:
		return false
	}
}

func (c rawCell) Int() (int64, bool) {
	if c.date || !c.isNumeric() {
		return 0, false
	}
	v, err := strconv.ParseInt(c.value, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c rawCell) Float() (float64, bool) {
	if c.date || !c.isNumeric() {
		return 0, false
	}
	v, err := strconv.ParseFloat(c.value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (c rawCell) String() (string, bool) {
	switch c.typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return c.value, true
	default:
		return "", false
	}
}

func (c rawCell) Bool() (bool, bool) {
	if c.typ != excelize.CellTypeBool {
		return false, false
	}
	// Booleans are stored as "1" / "0" in the file.
	return c.value == "1", true
}

func (c rawCell) IsEmpty() bool {
	return c.value == "" && c.typ == excelize.CellTypeUnset
}

func (c rawCell) ErrorValue() (string, bool) {
	if c.typ != excelize.CellTypeError {
		return "", false
	}
	return c.value, true
}

func (c rawCell) DateTime() (float64, bool) {
	if !c.date {
		return 0, false
	}
	v, err := strconv.ParseFloat(c.value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
