package clock

import "time"

// Clock supplies the current time. Every date-relative computation in the
// engines takes one of these instead of reading the system clock, so tests
// can pin "today".
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// System returns a Clock backed by the system time in UTC.
func System() Clock { return systemClock{} }

type fixedClock struct{ t time.Time }

func (f fixedClock) Now() time.Time { return f.t }

// Fixed returns a Clock frozen at t.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

// Today truncates the clock's current time to a UTC calendar date.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// DateOf strips the time-of-day portion, keeping a UTC midnight timestamp.
// Due dates and anchor dates are always stored in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a.
func DaysBetween(a, b time.Time) int {
	return int(DateOf(b).Sub(DateOf(a)) / (24 * time.Hour))
}
