package followup

import "time"

// Clock supplies the current date and time. Injected so the automation cycle
// and tests can pin "today".
type Clock interface {
	Today() time.Time
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

func (SystemClock) Today() time.Time {
	return DateOnly(time.Now().UTC())
}
