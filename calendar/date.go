package calendar

import (
	"errors"
	"fmt"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	secondsOfDay = 24 * 60 * 60
)

// ErrInvalidDate is returned when a string is not a valid YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid calendar date")

// Date is a calendar date without time of day. The zero value means "no date".
type Date struct {
	midnight time.Time // always midnight UTC
}

// NewDate builds a Date; out-of-range values are normalized like time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{midnight: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return NewDate(year, month, day)
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errors.Join(ErrInvalidDate, fmt.Errorf("%q", s))
	}

	return DateOf(t), nil
}

// MustParseDate is like ParseDate but panics on invalid input. Meant for tests and constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}

	return d
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d.midnight.IsZero()
}

// String returns YYYY-MM-DD, or an empty string for the zero Date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}

	return d.midnight.Format(dateLayout)
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return d.midnight
}

// AddDays returns d shifted by n calendar days (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{midnight: d.midnight.AddDate(0, 0, n)}
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.midnight.Before(other.midnight)
}

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool {
	return d.midnight.After(other.midnight)
}

// Equal reports whether d and other are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.midnight.Equal(other.midnight)
}

// Compare returns -1, 0 or +1 like time.Time.Compare.
func (d Date) Compare(other Date) int {
	return d.midnight.Compare(other.midnight)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Empty text yields the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// MarshalJSON renders the zero Date as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts null, "" or a quoted YYYY-MM-DD.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*d = Date{}
		return nil
	}

	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Join(ErrInvalidDate, fmt.Errorf("not a JSON string: %s", s))
	}

	return d.UnmarshalText([]byte(s[1 : len(s)-1]))
}

// DaysBetween returns the signed number of whole days from a to b.
// Both dates are midnight UTC, so the difference in Unix seconds is an exact multiple of a day.
func DaysBetween(a, b Date) int {
	return int((b.midnight.Unix() - a.midnight.Unix()) / secondsOfDay)
}
