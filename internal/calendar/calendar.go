// Package calendar converts absolute instants to the service's local
// calendar and back. All buckets (days, months, day-month keys) are defined
// in one configured IANA zone; the zone is carried on the Calendar value so
// a per-user zone stays a non-breaking extension.
package calendar

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a local calendar date, independent of any instant.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DayMonth is the year-independent "MM-DD" key used for
// same-day-across-years lookups.
func (d Date) DayMonth() string {
	return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
}

func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

type Calendar struct {
	loc *time.Location
}

// New loads the named IANA zone.
func New(zone string) (Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Calendar{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return Calendar{loc: loc}, nil
}

func (c Calendar) Zone() string {
	return c.loc.String()
}

// ValidateDate rejects calendar values that do not name a real date
// (month outside 1-12, Feb 30, day 31 in a 30-day month). The time package
// normalizes overflow, so a round-trip through time.Date detects it.
func ValidateDate(year, month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("%w: day %d", ErrInvalidDate, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return fmt.Errorf("%w: %04d-%02d-%02d does not exist", ErrInvalidDate, year, month, day)
	}
	return nil
}

func ValidateMonth(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d", ErrInvalidDate, month)
	}
	return nil
}

// DayBounds returns the UTC instants of local midnight and the last local
// nanosecond of the given local day. Both bounds are inclusive. Zoned
// arithmetic, so the result is correct in DST-observing zones too.
func (c Calendar) DayBounds(year, month, day int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, c.loc)
	end := time.Date(year, time.Month(month), day, 23, 59, 59, 999999999, c.loc)
	return start.UTC(), end.UTC()
}

// MonthBounds spans the first through last calendar day of the local month.
func (c Calendar) MonthBounds(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, c.loc)
	lastDay := start.AddDate(0, 1, -1).Day()
	_, end := c.DayBounds(year, month, lastDay)
	return start.UTC(), end
}

// ToLocalDate projects an absolute instant onto the local calendar.
func (c Calendar) ToLocalDate(t time.Time) Date {
	local := t.In(c.loc)
	return Date{Year: local.Year(), Month: int(local.Month()), Day: local.Day()}
}

// Today is the current local calendar date.
func (c Calendar) Today() Date {
	return c.ToLocalDate(time.Now())
}

// DateOf builds a Date without validation; callers validate first.
func DateOf(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}
