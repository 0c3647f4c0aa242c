package frame

// date.go decodes Excel 1900-date-system serial numbers and numeric date
// fragments into calendar dates.
//
// The 1900 date system counts days from an epoch of January 1, 1900
// (serial 1). It also encodes a February 29, 1900 that never existed in the
// real calendar; serial 60 maps to that fictitious day and every serial above
// it is shifted by one to compensate. Lotus 1-2-3 introduced the bug and
// Excel preserves it for file compatibility, so we reproduce it here.

import (
	"errors"
	"fmt"
)

// epochYear is the first year of the 1900 date system.
const epochYear = 1900

// Date parsing failures. Both decode entry points return one of these,
// optionally wrapped with context; match with errors.Is.
var (
	ErrUnsupportedFormat   = errors.New("unsupported date format")
	ErrInvalidDay          = errors.New("invalid day")
	ErrInvalidMonth        = errors.New("invalid month")
	ErrInvalidYear         = errors.New("invalid year")
	ErrInvalidSerialNumber = errors.New("invalid serial number")
	ErrInvalidDate         = errors.New("invalid date")
)

// Date is a calendar date. A valid Date has Year >= 1, Month in 1..12, and
// Day within the month's length under the Gregorian leap-year rule. The one
// exception is the fictitious February 29, 1900 produced by DecodeSerial(60).
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the date in ISO 8601 form (YYYY-MM-DD).
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// IsLeapYear reports whether year is a leap year under the Gregorian rule:
// divisible by 4 and not by 100, unless also divisible by 400.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns the number of days in year (366 for leap years).
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in (year, month), or 0 if month is
// outside 1..12.
func DaysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// DecodeSerial converts a 1900-date-system serial number to a calendar date.
//
// Serial 1 is January 1, 1900. Serial 60 returns the fictitious
// February 29, 1900 that the format encodes; serials above 60 are shifted
// down by one before conversion so that serial 61 lands on March 1, 1900.
// Serials below 1 fail with ErrInvalidSerialNumber.
func DecodeSerial(serial uint32) (Date, error) {
	if serial < 1 {
		return Date{}, fmt.Errorf("serial %d: %w", serial, ErrInvalidSerialNumber)
	}

	// The day Lotus invented. Real calendars skip from Feb 28 to Mar 1.
	if serial == 60 {
		return Date{Year: 1900, Month: 2, Day: 29}, nil
	}

	corrected := serial
	if serial > 60 {
		corrected--
	}
	remaining := int(corrected - 1)

	year := epochYear
	for remaining >= DaysInYear(year) {
		remaining -= DaysInYear(year)
		year++
	}

	month := 1
	for remaining >= DaysInMonth(year, month) {
		remaining -= DaysInMonth(year, month)
		month++
	}

	day := remaining + 1
	// Unreachable for valid input given the walk above; kept as a guard.
	if day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("serial %d yields day %d of %d/%d: %w",
			serial, day, year, month, ErrInvalidDate)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}

// DecodeComponents builds a Date from three numeric fragments ordered
// according to format, which must be one of "YYYY/MM/DD", "DD/MM/YYYY", or
// "MM/DD/YYYY". Any other format fails with ErrUnsupportedFormat.
//
// Day bounds are checked against the actual month length for every month, so
// April 31 is rejected just like February 29 outside leap years.
func DecodeComponents(frag1, frag2, frag3 uint32, format string) (Date, error) {
	var year, month, day int
	switch format {
	case "YYYY/MM/DD":
		year, month, day = int(frag1), int(frag2), int(frag3)
	case "DD/MM/YYYY":
		year, month, day = int(frag3), int(frag2), int(frag1)
	case "MM/DD/YYYY":
		year, month, day = int(frag3), int(frag1), int(frag2)
	default:
		return Date{}, fmt.Errorf("%q: %w", format, ErrUnsupportedFormat)
	}

	if day >= 32 {
		return Date{}, fmt.Errorf("day %d: %w", day, ErrInvalidDay)
	}
	if month == 2 {
		limit := 28
		if IsLeapYear(year) {
			limit = 29
		}
		if day > limit {
			return Date{}, fmt.Errorf("day %d of February %d: %w", day, year, ErrInvalidDay)
		}
	}
	// Full per-month bounds: a 30-day month rejects day 31.
	if month >= 1 && month <= 12 && (day < 1 || day > DaysInMonth(year, month)) {
		return Date{}, fmt.Errorf("day %d of %d/%d: %w", day, year, month, ErrInvalidDay)
	}
	if month < 1 || month > 12 {
		return Date{}, fmt.Errorf("month %d: %w", month, ErrInvalidMonth)
	}
	if year == 0 {
		return Date{}, fmt.Errorf("year %d: %w", year, ErrInvalidYear)
	}

	return Date{Year: year, Month: month, Day: day}, nil
}
