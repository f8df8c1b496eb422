package followup

import "time"

// DateOnly truncates t to midnight UTC so calendar-date arithmetic ignores the
// time component.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from one date to the other,
// negative when to precedes from.
func DaysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)) / (24 * time.Hour))
}

func sameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
