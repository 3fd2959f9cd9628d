package jiggler

import (
	"errors"
	"fmt"
)

// StartupError reports that the collaborators were unusable before the first
// tick. The loop is never started in that case.
type StartupError struct {
	Op  string
	Err error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup failed: %s: %v", e.Op, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// errInterrupted ends a tick early because a stop was requested mid-move.
var errInterrupted = errors.New("tick interrupted")
