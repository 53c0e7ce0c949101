package player

import "errors"

var (
	// ErrInitialization is returned when an animation cannot be set up,
	// because it has no frames or no canvas area.
	ErrInitialization = errors.New("initialization error")

	// ErrConfig is returned when a render dimension is missing or is not
	// a number.
	ErrConfig = errors.New("config error")

	// ErrInvalidDimension is returned when a render dimension is negative.
	ErrInvalidDimension = errors.New("invalid dimension")
)
