package util

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidClock is wrapped by every ParseClock failure.
var ErrInvalidClock = errors.New("invalid clock time")

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseClock parses "HH:MM" or "HH:MM[AM|PM]" and returns the next time that
// wall clock reading occurs after now. A time already passed today resolves
// to tomorrow.
func ParseClock(input string, now time.Time) (time.Time, error) {
	s := strings.ToUpper(strings.TrimSpace(input))

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !at.After(now) {
			at = at.AddDate(0, 0, 1)
		}
		return at, nil
	}

	return time.Time{}, fmt.Errorf("%w %q: use 24-hour HH:MM (23:30) or 12-hour HH:MM[AM|PM] (11:30PM)", ErrInvalidClock, input)
}

// UntilClock returns how long from now until the clock time in input.
func UntilClock(input string, now time.Time) (time.Duration, error) {
	at, err := ParseClock(input, now)
	if err != nil {
		return 0, err
	}
	return at.Sub(now), nil
}
