package envelope

import "errors"

var (
	// ErrTruncatedData is returned when the buffer ends before a declared field does.
	ErrTruncatedData = errors.New("truncated data")

	// ErrCorruptLength is returned when a length prefix is negative as a signed
	// 32-bit value or exceeds limits.MaxEnvelopeField.
	ErrCorruptLength = errors.New("corrupt length")

	// ErrTrailingData is returned when bytes remain after the last field.
	ErrTrailingData = errors.New("trailing data after last field")

	// ErrMissingField is returned when a mandatory field is empty.
	ErrMissingField = errors.New("missing required field")
)
