package lifecycle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the lifecycle operations. Handlers distinguish them
// with errors.Is; messages carry the specific field or entity via %w
// wrapping. Ownership failures are reported as ErrNotFound so that the API
// never reveals whether a paper another user owns exists.
var (
	ErrValidation           = errors.New("validation failed")
	ErrNotFound             = errors.New("not found")
	ErrDeadlineExceeded     = errors.New("submission deadline has passed")
	ErrConferenceNotOngoing = errors.New("conference is not accepting submissions")
	ErrDuplicateReview      = errors.New("review already submitted for this paper")
	ErrMissingFile          = errors.New("manuscript file is required")
)

// PersistenceError wraps a storage failure. It is always surfaced to the
// caller; the core never retries or swallows one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
