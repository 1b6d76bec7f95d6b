package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MonthPeriod is one calendar month in a given location.
type MonthPeriod struct {
	Year  int
	Month time.Month
	Loc   *time.Location
}

func NewMonthPeriod(year int, month time.Month, loc *time.Location) MonthPeriod {
	if loc == nil {
		loc = time.Local
	}
	return MonthPeriod{Year: year, Month: month, Loc: loc}
}

// Start is midnight on the first day of the month.
func (p MonthPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, p.Loc)
}

// End is the last representable instant of the month's last day.
func (p MonthPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

func (p MonthPeriod) Title() string {
	return fmt.Sprintf("%s %d", p.Month, p.Year)
}

func (p MonthPeriod) Filename() string {
	return fmt.Sprintf("attendance-%04d-%02d.xlsx", p.Year, int(p.Month))
}

// resolveMonth fills an absent month or year from now.
func resolveMonth(monthRaw, yearRaw string, now time.Time) (MonthPeriod, error) {
	month, year := now.Month(), now.Year()

	if s := strings.TrimSpace(monthRaw); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 1 || m > 12 {
			return MonthPeriod{}, validationErrorf("month must be a number between 1 and 12")
		}
		month = time.Month(m)
	}
	if s := strings.TrimSpace(yearRaw); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil || y < 1 || y > 9999 {
			return MonthPeriod{}, validationErrorf("year must be a number between 1 and 9999")
		}
		year = y
	}
	return NewMonthPeriod(year, month, now.Location()), nil
}

const dayLayout = "2006-01-02"

// parseDate accepts a calendar day (YYYY-MM-DD, read in loc) or an RFC 3339 instant.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(dayLayout, raw, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, validationErrorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", raw)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
