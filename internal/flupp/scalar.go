package flupp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	isoDateLayout = "2006-01-02"
	isoTimeLayout = "15:04:05"

	// Dates are exchanged as four digit ISO years.
	minYear = 0
	maxYear = 9999

	maxMinutes = math.MaxInt64 / int64(time.Minute)
)

// Date is a calendar date without a time zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate validates and returns the given calendar date.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, fmt.Errorf("%04d-%02d-%02d is not a calendar date", year, int(month), day)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(text []byte) error {
	t, err := time.Parse(isoDateLayout, string(text))
	if err != nil {
		return fmt.Errorf("parse date %q: %w", text, err)
	}
	*d = Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
	return nil
}

// TimeOfDay is a wall clock time. FluPP times never carry seconds, so
// Second is always zero for decoded values.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay validates and returns the given wall clock time.
func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, fmt.Errorf("%02d:%02d:%02d is not a time of day", hour, minute, second)
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// On combines t with the date d in UTC.
func (t TimeOfDay) On(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, time.UTC)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := time.Parse(isoTimeLayout, string(text))
	if err != nil {
		return fmt.Errorf("parse time %q: %w", text, err)
	}
	*t = TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}
	return nil
}

// ParseDate decodes a "dd.mm.yy" date. Years of one or two characters are
// expanded with the same pivot the time package applies to "06": 69 to 99
// map to the 1900s, everything below to the 2000s. Longer years are taken
// literally and must lie within 0 to 9999.
func ParseDate(s string) (Date, error) {
	dd, rest, ok := strings.Cut(s, ".")
	if !ok {
		return Date{}, valueError(ErrInvalidDate, s)
	}
	mm, yy, ok := strings.Cut(rest, ".")
	if !ok {
		return Date{}, valueError(ErrInvalidDate, s)
	}

	year, err := strconv.ParseInt(yy, 10, 32)
	if err != nil {
		return Date{}, valueError(ErrInvalidDate, s)
	}
	month, err := strconv.ParseUint(mm, 10, 8)
	if err != nil || month < 1 || month > 12 {
		return Date{}, valueError(ErrInvalidDate, s)
	}
	day, err := strconv.ParseUint(dd, 10, 8)
	if err != nil {
		return Date{}, valueError(ErrInvalidDate, s)
	}

	expanded := expandYear(yy, int(year))
	if expanded < minYear || expanded > maxYear {
		return Date{}, valueError(ErrInvalidDate, s)
	}
	date, err := NewDate(expanded, time.Month(month), int(day))
	if err != nil {
		return Date{}, valueError(ErrInvalidDate, s)
	}
	return date, nil
}

func expandYear(raw string, year int) int {
	if len(raw) > 2 || year < 0 {
		return year
	}
	if year >= 69 {
		return 1900 + year
	}
	return 2000 + year
}

// ParseTime decodes a "hh:mm" time of day.
func ParseTime(s string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, valueError(ErrInvalidTime, s)
	}
	hour, err := strconv.ParseUint(hh, 10, 8)
	if err != nil {
		return TimeOfDay{}, valueError(ErrInvalidTime, s)
	}
	minute, err := strconv.ParseUint(mm, 10, 8)
	if err != nil {
		return TimeOfDay{}, valueError(ErrInvalidTime, s)
	}
	t, err := NewTimeOfDay(int(hour), int(minute), 0)
	if err != nil {
		return TimeOfDay{}, valueError(ErrInvalidTime, s)
	}
	return t, nil
}

// ParseDuration decodes an "H[:MM]" duration. A value without a colon is a
// whole number of hours. Totals beyond the range of time.Duration fail.
func ParseDuration(s string) (time.Duration, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		mm = "0"
	}
	hours, err := strconv.ParseInt(hh, 10, 64)
	if err != nil {
		return 0, valueError(ErrInvalidDuration, s)
	}
	minutes, err := strconv.ParseInt(mm, 10, 64)
	if err != nil {
		return 0, valueError(ErrInvalidDuration, s)
	}
	total, ok := durationMinutes(hours, minutes)
	if !ok {
		return 0, valueError(ErrInvalidDuration, s)
	}
	return time.Duration(total) * time.Minute, nil
}

// durationMinutes returns hours*60+minutes, reporting false when the result
// does not fit a time.Duration.
func durationMinutes(hours, minutes int64) (int64, bool) {
	if hours > maxMinutes/60 || hours < -maxMinutes/60 {
		return 0, false
	}
	if minutes > maxMinutes || minutes < -maxMinutes {
		return 0, false
	}
	total := hours*60 + minutes
	if total > maxMinutes || total < -maxMinutes {
		return 0, false
	}
	return total, true
}
