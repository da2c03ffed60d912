package punch

import "errors"

// Punch domain errors
var (
	ErrInvalidKind   = errors.New("punch kind must be check_in or check_out")
	ErrPunchNotFound = errors.New("punch event not found")
	ErrFutureDate    = errors.New("punch date cannot be in the future")
)
