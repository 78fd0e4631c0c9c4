package service

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrUnparseableDate is the signal value for input no strategy could read.
var ErrUnparseableDate = errors.New("unparseable date")

// sheetEpoch is day zero of the spreadsheet serial-date system.
var sheetEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxSerial is 9999-12-31 in the serial system, the ceiling spreadsheet
// applications themselves accept. Larger numbers are not dates.
const maxSerial = 2958465

var dayMonthYearPattern = regexp.MustCompile(`^(\d{1,2})-([A-Za-z]{3})-(\d{4})$`)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Layouts tried for free-form date strings, most specific first.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseFlexibleDate converts a value of unknown shape into a calendar date.
// It accepts native dates, spreadsheet serial numbers (numeric or numeric
// string), common date-string layouts, and the D-MMM-YYYY export format.
// It never panics; unreadable input returns ErrUnparseableDate.
func ParseFlexibleDate(v any) (time.Time, error) {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return time.Time{}, ErrUnparseableDate
		}
		return x, nil
	case float64:
		return fromSerial(x)
	case float32:
		return fromSerial(float64(x))
	case int:
		return fromSerial(float64(x))
	case int64:
		return fromSerial(float64(x))
	case string:
		return parseDateString(x)
	default:
		return time.Time{}, ErrUnparseableDate
	}
}

// fromSerial converts a spreadsheet serial day number. Serial 1 is
// 1899-12-31; serials below 60 predate the fictitious 1900-02-29 that the
// serial system counts, so one day is subtracted to compensate. Whole days
// go through AddDate so large serials stay exact instead of overflowing a
// nanosecond duration.
func fromSerial(serial float64) (time.Time, error) {
	if serial <= 1 || serial > maxSerial {
		return time.Time{}, ErrUnparseableDate
	}
	days := int(serial)
	frac := serial - float64(days)
	t := sheetEpoch.AddDate(0, 0, days).Add(time.Duration(frac * float64(24*time.Hour)))
	if serial < 60 {
		t = t.AddDate(0, 0, -1)
	}
	return t, nil
}

func parseDateString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrUnparseableDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	// Raw spreadsheet cells surface serial dates as numeric strings.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return fromSerial(serial)
	}

	if m := dayMonthYearPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[3])
		month, ok := monthAbbrevs[strings.ToLower(m[2])]
		if ok && day > 0 && year > 0 {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, ErrUnparseableDate
}

// isoDate renders a calendar date in canonical ISO form, time-of-day
// discarded.
func isoDate(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
