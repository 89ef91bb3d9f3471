package internal

import "errors"

var (
	ErrInvalidColumnCount  = errors.New("column count must be positive")
	ErrInvalidSpacing      = errors.New("spacing must not be negative")
	ErrInvalidCornerRadius = errors.New("corner radius must not be negative")
	ErrNilElement          = errors.New("arrangement contains a nil element")
	ErrIncomparable        = errors.New("element is not comparable")
	ErrDuplicateElement    = errors.New("element appears more than once in arrangement")
	ErrColumnOutOfRange    = errors.New("column index out of range")
	ErrUnknownElement      = errors.New("element is not part of the arrangement")

	ErrCardNotFound  = errors.New("card not found")
	ErrAmbiguousCard = errors.New("card id is ambiguous")
)
