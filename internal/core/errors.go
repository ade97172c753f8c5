// Package core defines sentinel errors.
package core

import "errors"

// Sentinel errors, wrapped with fmt.Errorf("...: %w") at the call sites.
var (
	// Configuration errors
	ErrConfigUnavailable = errors.New("burstgen: configuration unavailable")
	ErrConfigInvalid     = errors.New("burstgen: invalid configuration")

	// Output errors
	ErrSinkUnavailable = errors.New("burstgen: output sink unavailable")

	// Scheduling errors
	ErrPayloadExhausted = errors.New("burstgen: payload buffer exhausted")

	// Frame decoding errors
	ErrFrameTooShort = errors.New("burstgen: frame too short")
)
