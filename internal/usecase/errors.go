package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrForbidden             = errors.New("forbidden")
	ErrNoScoreExtractable    = errors.New("no score extractable")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// unavailable marks a storage failure as retryable while keeping the cause.
func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, op, err)
}
