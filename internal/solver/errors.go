package solver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTimeout indicates the solver did not answer before the deadline.
	// The process has been killed.
	ErrTimeout = errors.New("solver timed out")

	// ErrProcessFailure indicates the solver could not be started or exited
	// with a non-zero status.
	ErrProcessFailure = errors.New("solver process failed")

	// ErrProtocol indicates the solver's output could not be understood.
	ErrProtocol = errors.New("invalid solver output")
)

// ProcessError carries the diagnostics of a failed solver run.
// It matches ErrProcessFailure with errors.Is.
type ProcessError struct {
	ExitCode int // -1 when the process never started
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	msg := fmt.Sprintf("%s (exit %d)", ErrProcessFailure, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrProcessFailure}
	}
	return []error{ErrProcessFailure, e.Err}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrProcessFailure):
		return "PROCESS_FAILURE"
	case errors.Is(err, ErrProtocol):
		return "PROTOCOL"
	default:
		return "UNKNOWN"
	}
}
