package calendar

import (
	"errors"
	"time"
)

var (
	// ErrNilClock is returned when a Policy is built without a clock.
	ErrNilClock = errors.New("clock must not be nil")

	// ErrNilLocation is returned when a nil time zone is configured.
	ErrNilLocation = errors.New("location must not be nil")

	// ErrUnknownTimezone is returned when a time zone name cannot be loaded.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// Clock is the source of the current instant.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock of the host.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ClockFunc adapts a plain function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// FixedClock always returns the same instant.
type FixedClock struct {
	instant time.Time
}

// NewFixedClock returns a Clock frozen at instant.
func NewFixedClock(instant time.Time) FixedClock {
	return FixedClock{instant: instant}
}

// FixedClockAt returns a Clock frozen at noon UTC of the given date.
func FixedClockAt(d Date) FixedClock {
	return FixedClock{instant: d.Time().Add(12 * time.Hour)}
}

// Now returns the frozen instant.
func (c FixedClock) Now() time.Time {
	return c.instant
}

// Policy turns instants into calendar dates in one configured time zone.
type Policy struct {
	clock    Clock
	location *time.Location
}

// PolicyOption configures a Policy.
type PolicyOption func(*Policy) error

// WithLocation sets the time zone that defines "today".
func WithLocation(location *time.Location) PolicyOption {
	return func(p *Policy) error {
		if location == nil {
			return ErrNilLocation
		}

		p.location = location

		return nil
	}
}

// WithTimezone sets the time zone by IANA name, e.g. "America/Sao_Paulo".
func WithTimezone(name string) PolicyOption {
	return func(p *Policy) error {
		location, err := time.LoadLocation(name)
		if err != nil {
			return errors.Join(ErrUnknownTimezone, err)
		}

		p.location = location

		return nil
	}
}

// NewPolicy builds a Policy. Without options the time zone is UTC.
func NewPolicy(clock Clock, options ...PolicyOption) (Policy, error) {
	if clock == nil {
		return Policy{}, ErrNilClock
	}

	policy := Policy{clock: clock, location: time.UTC}

	for _, option := range options {
		if err := option(&policy); err != nil {
			return Policy{}, err
		}
	}

	return policy, nil
}

// Today returns the current calendar date in the configured time zone.
func (p Policy) Today() Date {
	return DateOf(p.clock.Now().In(p.location))
}

// Location returns the configured time zone.
func (p Policy) Location() *time.Location {
	return p.location
}

// DaysBetween returns the signed whole-day difference from a to b.
func (p Policy) DaysBetween(a, b Date) int {
	return DaysBetween(a, b)
}
