package session

import (
	"errors"
	"fmt"

	"github.com/abhishek622/interviewSession/pkg/model"
)

var (
	ErrNotFound          = errors.New("interview not found")
	ErrExpired           = errors.New("interview link has expired")
	ErrAlreadyEnded      = errors.New("interview has already ended")
	ErrAlreadyActive     = errors.New("interview is already active")
	ErrNotActive         = errors.New("interview is not active")
	ErrNotTerminal       = errors.New("interview has not finished")
	ErrAlreadyScored     = errors.New("interview has already been scored")
	ErrDuplicateCapture  = errors.New("duplicate capture")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrAlreadyScheduled  = errors.New("application already has an interview")
	ErrInvalidInput      = errors.New("invalid input")
)

// TransitionError names the edge that was refused.
type TransitionError struct {
	From   model.SessionStatus
	To     model.SessionStatus
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
	}
	return fmt.Sprintf("invalid transition %s -> %s: %s", e.From, e.To, e.Reason)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
