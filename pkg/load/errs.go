package load

import "errors"

var (
	// ErrUnknownScenario indicates a scenario name outside normal/peak/savings.
	ErrUnknownScenario = errors.New("load: unknown scenario")

	// ErrUnknownShape indicates a peak shape other than offset/bare.
	ErrUnknownShape = errors.New("load: unknown peak shape")
)
