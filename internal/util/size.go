package util

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidSize is wrapped by every ParseSize failure.
var ErrInvalidSize = errors.New("invalid size")

// ParseSize parses a "WIDTHxHEIGHT" pixel size such as "120x40". Zero is
// allowed and disables the region it sizes.
func ParseSize(input string) (width, height int, err error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(input)), "x")
	if !ok {
		return 0, 0, fmt.Errorf("%w %q: want WIDTHxHEIGHT", ErrInvalidSize, input)
	}

	width, err = strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width < 0 {
		return 0, 0, fmt.Errorf("%w %q: bad width", ErrInvalidSize, input)
	}
	height, err = strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height < 0 {
		return 0, 0, fmt.Errorf("%w %q: bad height", ErrInvalidSize, input)
	}
	return width, height, nil
}
