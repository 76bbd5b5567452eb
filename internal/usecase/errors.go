package usecase

import (
	"errors"
	"fmt"
)

// Error taxonomy. Callers match with errors.Is; the HTTP layer maps each
// class to a status code.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrBusinessRule = errors.New("business rule violated")
	ErrStorage      = errors.New("storage failure")
	ErrUserAbort    = errors.New("aborted by user")
)

var (
	ErrInsufficientPoints   = fmt.Errorf("insufficient points: %w", ErrBusinessRule)
	ErrTripTerminal         = fmt.Errorf("trip is in a terminal state: %w", ErrBusinessRule)
	ErrTransitionNotAllowed = fmt.Errorf("status transition not allowed: %w", ErrBusinessRule)
	ErrScheduleConflict     = fmt.Errorf("schedule conflict: %w", ErrBusinessRule)
	ErrMaxPaymentAttempts   = fmt.Errorf("maximum payment attempts reached: %w", ErrBusinessRule)
	ErrNotPaid              = fmt.Errorf("order is not paid: %w", ErrBusinessRule)
	ErrOrderClosed          = fmt.Errorf("order is no longer open: %w", ErrBusinessRule)
)

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// isDomainError reports whether err already carries a taxonomy class.
func isDomainError(err error) bool {
	for _, target := range []error{ErrValidation, ErrNotFound, ErrBusinessRule, ErrStorage, ErrUserAbort} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
