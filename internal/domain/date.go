package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrNotADate marks cells that carry no date at all. Callers skip these
// silently, unlike parse failures which are worth logging.
var ErrNotADate = errors.New("not a date")

// centuryPivot is the two-digit-year window: yy is read as 19yy and moved a
// century forward when that falls before the pivot. Survey data spans
// 2024-2025, well inside the window.
const centuryPivot = 1950

// excelEpoch anchors the 1900 date system: serial n is excelEpoch + (n-2)
// days. The 2 covers the 1-based count plus Excel's phantom 1900-02-29.
var excelEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// slashLayouts are tried in order; day-first wins over month-first.
var slashLayouts = []struct {
	layout       string
	twoDigitYear bool
}{
	{"2/1/2006", false},
	{"2/1/06", true},
	{"1/2/2006", false},
	{"1/2/06", true},
}

var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
}

// ParseSurveyDate resolves a date-row cell to a calendar date at midnight UTC.
// It returns ErrNotADate for cells that hold no date and a descriptive error
// for values that look like dates but do not parse.
func ParseSurveyDate(c Cell) (time.Time, error) {
	switch c.Kind {
	case CellText:
		return parseDateText(c.Text)
	case CellNumber:
		return excelSerialDate(c.Number)
	case CellTime:
		return calendarDate(c.Time), nil
	default:
		return time.Time{}, ErrNotADate
	}
}

func parseDateText(s string) (time.Time, error) {
	switch {
	case strings.Contains(s, "/"):
		return parseSlashDate(s)
	case strings.Contains(s, "T"):
		return parseISODate(s)
	default:
		return time.Time{}, ErrNotADate
	}
}

// parseSlashDate handles "D/M/YYYY" style dates, optionally prefixed by a
// time of day ("8.30am 3/5/2025").
func parseSlashDate(s string) (time.Time, error) {
	fields := strings.Fields(s)
	token := fields[len(fields)-1]

	for _, l := range slashLayouts {
		t, err := time.Parse(l.layout, token)
		if err != nil {
			continue
		}
		if l.twoDigitYear {
			t = windowTwoDigitYear(t)
		}
		return calendarDate(t), nil
	}
	return time.Time{}, fmt.Errorf("parse date %q: no known day/month layout matches %q", s, token)
}

// windowTwoDigitYear re-centres a two-digit year onto [1950, 2050).
func windowTwoDigitYear(t time.Time) time.Time {
	year := 1900 + t.Year()%100
	if year < centuryPivot {
		year += 100
	}
	return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func parseISODate(s string) (time.Time, error) {
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	var firstErr error
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return calendarDate(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parse ISO date %q: %w", s, firstErr)
}

// excelSerialDate converts a 1900-system serial number to a date.
func excelSerialDate(v float64) (time.Time, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return time.Time{}, fmt.Errorf("excel serial %v is not finite", v)
	}
	days := math.Floor(v) - 2
	// Keep the result within years 1..9999.
	if days < -693595 || days > 2958463 {
		return time.Time{}, fmt.Errorf("excel serial %v out of range", v)
	}
	return excelEpoch.AddDate(0, 0, int(days)), nil
}
