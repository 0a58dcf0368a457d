package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for the learning loop.
var (
	// ErrUnknownSystem indicates a variant name outside the closed set.
	ErrUnknownSystem = errors.New("ilc: unknown system variant")

	// ErrNoFeedForward indicates feed-forward seeding was requested on a
	// variant without a nominal inversion.
	ErrNoFeedForward = errors.New("ilc: system has no feed-forward inversion")

	// ErrNeedsFeedback indicates an open-loop run was requested on a variant
	// whose control channels are defined through the feedback law.
	ErrNeedsFeedback = errors.New("ilc: system requires the feedback law")

	// ErrLiftedLength indicates a lifted buffer whose length is not an exact
	// multiple of its block size.
	ErrLiftedLength = errors.New("ilc: lifted length not a multiple of block size")

	// ErrNonFinite indicates NaN or Inf entered the learning update.
	ErrNonFinite = errors.New("ilc: non-finite value in learning update")

	// ErrUnstable indicates the simulated trajectory diverged.
	ErrUnstable = errors.New("ilc: simulation diverged (NaN or Inf state)")

	// ErrCanceled indicates the run was interrupted.
	ErrCanceled = errors.New("ilc: run canceled by context")
)

// RunError wraps an error with the trial and phase it occurred in.
type RunError struct {
	Trial   int
	Phase   string
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("trial %d (%s): %v", e.Trial, e.Phase, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
