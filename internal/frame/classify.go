package frame

import (
	"log/slog"
	"math"
	"strconv"
)

// RawCell is an opaque cell value supplied by a workbook reader. Each probe
// reports whether the cell holds that underlying primitive kind; at most one
// extraction probe succeeds for a given cell.
type RawCell interface {
	// Int extracts an integer payload.
	Int() (int64, bool)
	// Float extracts a floating-point payload.
	Float() (float64, bool)
	// String extracts a string payload.
	String() (string, bool)
	// Bool extracts a boolean payload.
	Bool() (bool, bool)
	// IsEmpty reports whether the cell holds nothing at all.
	IsEmpty() bool
	// ErrorValue extracts a spreadsheet error payload such as "#DIV/0!".
	ErrorValue() (string, bool)
	// DateTime extracts a date/time payload as a raw serial number.
	DateTime() (float64, bool)
}

// Classifier maps raw cells to typed values. It is stateless apart from the
// injected logger and safe for concurrent use.
type Classifier struct {
	logger *slog.Logger
}

// NewClassifier returns a Classifier that reports unclassifiable cells
// through logger. A nil logger falls back to slog.Default().
func NewClassifier(logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{logger: logger}
}

// Classify maps one raw cell to a typed value, or nil when the cell holds no
// classifiable value. Probes run in priority order and the first match wins:
// integer (when it fits int32), float, string, boolean (rendered as text),
// empty, error.
//
// An integer outside the int32 range whose float probe also fails is kept as
// its decimal text rather than dropped, so no data is silently lost.
func (c *Classifier) Classify(raw RawCell) *CellValue {
	if v, ok := raw.Int(); ok {
		if v >= math.MinInt32 && v <= math.MaxInt32 {
			cv := IntValue(int32(v))
			return &cv
		}
		if _, ok := raw.Float(); !ok {
			c.logger.Debug("integer exceeds 32-bit range, keeping as text", "value", v)
			cv := TextValue(strconv.FormatInt(v, 10))
			return &cv
		}
	}
	if v, ok := raw.Float(); ok {
		cv := FloatValue(v)
		return &cv
	}
	if v, ok := raw.String(); ok {
		cv := TextValue(v)
		return &cv
	}
	if v, ok := raw.Bool(); ok {
		cv := TextValue(strconv.FormatBool(v))
		return &cv
	}
	if raw.IsEmpty() {
		return nil
	}
	if msg, ok := raw.ErrorValue(); ok {
		c.logger.Warn("error-bearing cell left empty", "cell_error", msg)
		return nil
	}
	return nil
}

// ClassifyDate checks whether a cell that Classify could not type holds a
// date/time payload. The payload is truncated to a day-count serial and
// decoded; a decode failure is returned to the caller rather than swallowed,
// so callers choose between degrading and propagating.
//
// The boolean result reports whether a date was produced. A cell with no
// date/time payload returns (Date{}, false, nil).
func (c *Classifier) ClassifyDate(raw RawCell) (Date, bool, error) {
	f, ok := raw.DateTime()
	if !ok {
		return Date{}, false, nil
	}
	if f < 1 {
		return Date{}, false, ErrInvalidSerialNumber
	}
	d, err := DecodeSerial(uint32(f))
	if err != nil {
		return Date{}, false, err
	}
	return d, true, nil
}
