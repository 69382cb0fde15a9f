package consumption

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField indicates a required input was not supplied
	// (or the scenario/method name is not recognized).
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidBounds indicates b is not strictly greater than a.
	ErrInvalidBounds = errors.New("invalid bounds")

	// ErrInvalidStepCount indicates n is not a positive integer or exceeds the step ceiling.
	ErrInvalidStepCount = errors.New("invalid step count")

	// ErrPowerOrderingViolation indicates maxPower < idlePower (or idlePower < 0).
	ErrPowerOrderingViolation = errors.New("power ordering violation")

	// ErrOddStepCountForSimpson indicates Simpson's rule was chosen with an odd n.
	ErrOddStepCountForSimpson = errors.New("odd step count for simpson")

	// ErrLoadCoefficientOutOfRange indicates base or amplitude lies outside [0,1].
	ErrLoadCoefficientOutOfRange = errors.New("load coefficient out of range")

	// ErrMissingOrInvalidPeakSteepness indicates k is absent or not > 0 (peak only).
	ErrMissingOrInvalidPeakSteepness = errors.New("missing or invalid peak steepness")

	// ErrPeakCenterOutOfBounds indicates a supplied t0 outside [a,b] (peak only).
	ErrPeakCenterOutOfBounds = errors.New("peak center out of bounds")

	// ErrMissingOrInvalidSavingsLimit indicates the power limit is absent or not > 0 (savings only).
	ErrMissingOrInvalidSavingsLimit = errors.New("missing or invalid savings limit")

	// ErrInvalidDerivationRate indicates a negative or non-finite tariff or emission factor.
	ErrInvalidDerivationRate = errors.New("invalid derivation rate")
)

var _codes = map[error]string{
	ErrMissingRequiredField:          "MissingRequiredField",
	ErrInvalidBounds:                 "InvalidBounds",
	ErrInvalidStepCount:              "InvalidStepCount",
	ErrPowerOrderingViolation:        "PowerOrderingViolation",
	ErrOddStepCountForSimpson:        "OddStepCountForSimpson",
	ErrLoadCoefficientOutOfRange:     "LoadCoefficientOutOfRange",
	ErrMissingOrInvalidPeakSteepness: "MissingOrInvalidPeakSteepness",
	ErrPeakCenterOutOfBounds:         "PeakCenterOutOfBounds",
	ErrMissingOrInvalidSavingsLimit:  "MissingOrInvalidSavingsLimit",
	ErrInvalidDerivationRate:         "InvalidDerivationRate",
}

// ValidationError is a rejected Input. Reason is one of the Err* sentinels
// above, so errors.Is(err, ErrInvalidBounds) works on the returned error.
type ValidationError struct {
	Reason error
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	if e == nil || e.Reason == nil {
		return ""
	}
	if e.Detail == "" {
		return fmt.Sprintf("consumption: %s (%s)", e.Reason, e.Field)
	}
	return fmt.Sprintf("consumption: %s (%s): %s", e.Reason, e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Reason
}

// Code returns the stable identifier of the failed check, e.g. "InvalidBounds".
func (e *ValidationError) Code() string {
	if e == nil {
		return ""
	}
	return _codes[e.Reason]
}

func reject(reason error, field, format string, args ...any) error {
	return &ValidationError{Reason: reason, Field: field, Detail: fmt.Sprintf(format, args...)}
}
