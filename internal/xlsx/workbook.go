// Package xlsx reads .xlsx workbooks and exposes their cells as
// probe-capable raw values for the frame package to classify.
//
// The package wraps excelize and owns all format-specific concerns: sheet
// lookup, raw value extraction, and deciding whether a cell's number format
// marks it as a date. Nothing here interprets values; that is the
// classifier's job.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kmandrus/sheetframe/internal/frame"
)

// Workbook is an open .xlsx file.
type Workbook struct {
	f *excelize.File
}

// Open reads a workbook from r. An unreadable or malformed file is an error
// at this boundary; it never degrades silently.
func Open(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

// OpenFile reads a workbook from disk.
func OpenFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Workbook{f: f}, nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Sheets returns the workbook's sheet names in file order.
func (w *Workbook) Sheets() []string {
	return w.f.GetSheetList()
}

// Rows returns the raw cells of the named sheet, preserving row order and
// per-row lengths. A sheet that does not exist yields (nil, nil): the caller
// gets an empty table, not a failure.
func (w *Workbook) Rows(sheet string) ([][]frame.RawCell, error) {
	idx, err := w.f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil
	}

	rows, err := w.f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	out := make([][]frame.RawCell, len(rows))
	for ri, row := range rows {
		cells := make([]frame.RawCell, len(row))
		for ci, value := range row {
			cells[ci] = w.probeCell(sheet, ci+1, ri+1, value)
		}
		out[ri] = cells
	}
	return out, nil
}

// probeCell captures everything the classifier's probes need: the raw value,
// the stored cell type, and whether the cell's style marks it as a date.
func (w *Workbook) probeCell(sheet string, col, row int, value string) rawCell {
	rc := rawCell{value: value}

	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return rc
	}
	if t, err := w.f.GetCellType(sheet, name); err == nil {
		rc.typ = t
	}
	rc.date = rc.typ == excelize.CellTypeDate || w.hasDateStyle(sheet, name)

	return rc
}

// hasDateStyle reports whether the cell's number format is one of the
// builtin date/time formats.
func (w *Workbook) hasDateStyle(sheet, cell string) bool {
	styleID, err := w.f.GetCellStyle(sheet, cell)
	if err != nil {
		return false
	}
	style, err := w.f.GetStyle(styleID)
	if err != nil || style == nil {
		return false
	}
	return isDateNumFmt(style.NumFmt)
}

// isDateNumFmt reports whether id is a builtin date or time number format.
// IDs 14-22 are date and date-time formats, 45-47 are elapsed-time formats.
func isDateNumFmt(id int) bool {
	return (id >= 14 && id <= 22) || (id >= 45 && id <= 47)
}
