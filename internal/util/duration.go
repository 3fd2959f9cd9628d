// Package util holds the small parsers shared by the config layer and the
// terminal UI.
package util

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration is wrapped by every ParseDuration failure.
var ErrInvalidDuration = errors.New("invalid duration")

// maxMinutes is the largest minute count a time.Duration can hold.
const maxMinutes = math.MaxInt64 / int64(time.Minute)

// ParseDuration accepts a bare number of minutes ("30") or a Go duration
// string ("1h30m"). Negative values are rejected. Zero is returned as is;
// callers decide whether it means "no limit" or is an error.
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidDuration)
	}

	var d time.Duration
	if minutes, err := strconv.ParseInt(input, 10, 64); err == nil {
		if minutes > maxMinutes {
			return 0, fmt.Errorf("%w %q: too many minutes", ErrInvalidDuration, input)
		}
		d = time.Duration(minutes) * time.Minute
	} else if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w %q: too many minutes", ErrInvalidDuration, input)
	} else {
		parsed, err := time.ParseDuration(input)
		if err != nil {
			return 0, fmt.Errorf("%w %q: use minutes (30) or a duration like 1h30m", ErrInvalidDuration, input)
		}
		d = parsed
	}

	if d < 0 {
		return 0, fmt.Errorf("%w %q: must not be negative", ErrInvalidDuration, input)
	}
	return d, nil
}
