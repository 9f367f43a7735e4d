package app

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a referenced doctor or plan version does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrSolverUnavailable wraps every solver failure (timeout, crash,
	// unreadable output). Nothing has been written when it is returned.
	ErrSolverUnavailable = errors.New("could not compute a schedule")
)

// ValidationError reports a malformed request. It is returned before any
// solver call or write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "invalid request: " + e.Message
	}
	return "invalid request: " + e.Field + ": " + e.Message
}

type PlanErrorCode string

const (
	PlanErrNoActiveDoctors PlanErrorCode = "NO_ACTIVE_DOCTORS"
	PlanErrNoPendingDays   PlanErrorCode = "NO_PENDING_DAYS"
)

// PlanError reports why a full re-plan could not start.
type PlanError struct {
	Code    PlanErrorCode
	Message string
}

func (e *PlanError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// ImportError collects every problem found in a roster file.
type ImportError struct {
	Problems []string
}

func (e *ImportError) Error() string {
	return "roster import failed:\n  - " + strings.Join(e.Problems, "\n  - ")
}
