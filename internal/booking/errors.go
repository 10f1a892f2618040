package booking

import (
	"errors"
	"fmt"
)

var (
	// ErrHourNotChosen is a programming-contract violation: submit was
	// invoked with no hour selected. The UI must keep submit unreachable
	// until an hour is chosen, so this is not a user-facing failure.
	ErrHourNotChosen = errors.New("booking: submit requires a chosen hour")

	// ErrSubmitInFlight rejects a second submission while one is running;
	// the same session must not double-book a provider/hour pair.
	ErrSubmitInFlight = errors.New("booking: submission already in flight")

	// ErrClosed is returned once the flow's owning screen has gone away.
	ErrClosed = errors.New("booking: flow closed")
)

// FetchError is a non-fatal availability or directory read failure.
// Previously displayed data stays untouched; changing date or provider
// retries implicitly.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("booking: availability fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// SubmissionError is a recoverable booking write failure, including
// server-side rejection of a slot that is no longer available. The
// selection survives so the user can retry manually.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("booking: submission failed: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
