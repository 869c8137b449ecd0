package magneticalc

import "errors"

var (
	ErrInvalidGeometry         = errors.New("wire needs at least 2 points")
	ErrInvalidResolution       = errors.New("resolution must be > 0")
	ErrDegenerateVolume        = errors.New("sampling volume has no points")
	ErrDivisionByZero          = errors.New("division by zero")
	ErrResourceExhausted       = errors.New("sampling grid too large")
	ErrAccelerationUnavailable = errors.New("accelerated strategy unavailable")
)
