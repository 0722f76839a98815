package dateutil

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// YearMonthLayout is the fixed-width layout used for every month key in the data model.
const YearMonthLayout = "2006-01"

// ErrInvalidYearMonth is returned for month strings that are not strict YYYY-MM.
var ErrInvalidYearMonth = errors.New("invalid year-month")

// ParseYearMonth parses a strict "YYYY-MM" string into the first day of that month (UTC).
func ParseYearMonth(ym string) (time.Time, error) {
	if len(ym) != 7 || ym[4] != '-' {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, ym)
	}
	year, err := strconv.Atoi(ym[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, ym)
	}
	month, err := strconv.Atoi(ym[5:])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidYearMonth, ym)
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

// MustParseYearMonth is ParseYearMonth for literals known to be valid.
func MustParseYearMonth(ym string) time.Time {
	t, err := ParseYearMonth(ym)
	if err != nil {
		panic(err)
	}
	return t
}

// IsValidYearMonth reports whether ym is a strict YYYY-MM string.
func IsValidYearMonth(ym string) bool {
	_, err := ParseYearMonth(ym)
	return err == nil
}

// FormatYearMonth formats a date as "YYYY-MM" with a zero-padded month.
func FormatYearMonth(date time.Time) string {
	return fmt.Sprintf("%04d-%02d", date.Year(), int(date.Month()))
}

// YearMonthOf builds a month key from its parts.
func YearMonthOf(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// BeginningOfMonth returns the first instant of the month containing date.
func BeginningOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// AddMonth returns the first day of the following calendar month.
func AddMonth(date time.Time) time.Time {
	return AddMonths(date, 1)
}

// AddMonths adds a number of calendar months, anchored on the first of the month
// so that month-end dates never overflow into the month after.
func AddMonths(date time.Time, months int) time.Time {
	return BeginningOfMonth(date).AddDate(0, months, 0)
}

// DiffMonths returns later - earlier in whole calendar months. Malformed input yields 0.
func DiffMonths(laterYM, earlierYM string) int {
	n, err := DiffMonthsE(laterYM, earlierYM)
	if err != nil {
		return 0
	}
	return n
}

// DiffMonthsE is DiffMonths with the parse error surfaced.
func DiffMonthsE(laterYM, earlierYM string) (int, error) {
	later, err := ParseYearMonth(laterYM)
	if err != nil {
		return 0, err
	}
	earlier, err := ParseYearMonth(earlierYM)
	if err != nil {
		return 0, err
	}
	return (later.Year()-earlier.Year())*12 + int(later.Month()) - int(earlier.Month()), nil
}

// CompareYearMonth orders two month keys. The format is fixed-width, so string
// comparison is chronological.
func CompareYearMonth(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// InRange reports whether ym lies within [start, end], inclusive on both ends.
func InRange(ym, start, end string) bool {
	return start <= ym && ym <= end
}
