package xlsx

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kmandrus/sheetframe/internal/frame"
)

// ----------------------------------------------------------------------------
// Probe Tests
// ----------------------------------------------------------------------------

func TestRawCellNumericProbes(t *testing.T) {
	tests := []struct {
		name      string
		cell      rawCell
		wantInt   bool
		wantFloat bool
	}{
		{
			name:      "whole number extracts as int and float",
			cell:      rawCell{value: "5", typ: excelize.CellTypeNumber},
			wantInt:   true,
			wantFloat: true,
		},
		{
			name:      "decimal extracts only as float",
			cell:      rawCell{value: "5.5", typ: excelize.CellTypeNumber},
			wantInt:   false,
			wantFloat: true,
		},
		{
			name:      "formula cached numeric result",
			cell:      rawCell{value: "12", typ: excelize.CellTypeFormula},
			wantInt:   true,
			wantFloat: true,
		},
		{
			name:      "date-styled number suppresses numeric probes",
			cell:      rawCell{value: "60", typ: excelize.CellTypeNumber, date: true},
			wantInt:   false,
			wantFloat: false,
		},
		{
			name:      "shared string is not numeric",
			cell:      rawCell{value: "5", typ: excelize.CellTypeSharedString},
			wantInt:   false,
			wantFloat: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := tt.cell.Int(); ok != tt.wantInt {
				t.Errorf("Int() ok = %v, want %v", ok, tt.wantInt)
			}
			if _, ok := tt.cell.Float(); ok != tt.wantFloat {
				t.Errorf("Float() ok = %v, want %v", ok, tt.wantFloat)
			}
		})
	}
}

func TestRawCellStringAndBoolProbes(t *testing.T) {
	s, ok := rawCell{value: "hi", typ: excelize.CellTypeSharedString}.String()
	if !ok || s != "hi" {
		t.Errorf("shared string String() = %q, %v", s, ok)
	}

	s, ok = rawCell{value: "inline", typ: excelize.CellTypeInlineString}.String()
	if !ok || s != "inline" {
		t.Errorf("inline string String() = %q, %v", s, ok)
	}

	if _, ok := (rawCell{value: "5", typ: excelize.CellTypeNumber}).String(); ok {
		t.Error("number cell must not extract as string")
	}

	b, ok := rawCell{value: "1", typ: excelize.CellTypeBool}.Bool()
	if !ok || !b {
		t.Errorf("Bool() = %v, %v, want true", b, ok)
	}
	b, ok = rawCell{value: "0", typ: excelize.CellTypeBool}.Bool()
	if !ok || b {
		t.Errorf("Bool() = %v, %v, want false", b, ok)
	}
}

func TestRawCellEmptyErrorAndDateProbes(t *testing.T) {
	if !(rawCell{}).IsEmpty() {
		t.Error("zero rawCell should be empty")
	}
	if (rawCell{value: "x", typ: excelize.CellTypeSharedString}).IsEmpty() {
		t.Error("string cell should not be empty")
	}

	msg, ok := rawCell{value: "#DIV/0!", typ: excelize.CellTypeError}.ErrorValue()
	if !ok || msg != "#DIV/0!" {
		t.Errorf("ErrorValue() = %q, %v", msg, ok)
	}

	serial, ok := rawCell{value: "45292.5", typ: excelize.CellTypeNumber, date: true}.DateTime()
	if !ok || serial != 45292.5 {
		t.Errorf("DateTime() = %v, %v", serial, ok)
	}
	if _, ok := (rawCell{value: "45292", typ: excelize.CellTypeNumber}).DateTime(); ok {
		t.Error("undated number must not extract as date")
	}
}

// A date-styled cell flows through the classifier's date fallback end to end.
func TestRawCellClassifiesAsDate(t *testing.T) {
	c := frame.NewClassifier(nil)

	cell := rawCell{value: "60", typ: excelize.CellTypeNumber, date: true}
	if v := c.Classify(cell); v != nil {
		t.Fatalf("Classify() = %+v, want no value before the date fallback", v)
	}

	d, ok, err := c.ClassifyDate(cell)
	if err != nil || !ok {
		t.Fatalf("ClassifyDate() = %v, %v, %v", d, ok, err)
	}
	if want := (frame.Date{Year: 1900, Month: 2, Day: 29}); d != want {
		t.Errorf("ClassifyDate() = %v, want %v", d, want)
	}
}

func TestIsDateNumFmt(t *testing.T) {
	for _, id := range []int{14, 15, 22, 45, 47} {
		if !isDateNumFmt(id) {
			t.Errorf("isDateNumFmt(%d) = false, want true", id)
		}
	}
	for _, id := range []int{0, 1, 13, 23, 44, 48, 49} {
		if isDateNumFmt(id) {
			t.Errorf("isDateNumFmt(%d) = true, want false", id)
		}
	}
}
