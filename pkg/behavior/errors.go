package behavior

import "errors"

// ErrInvalidConfig reports flock or boid parameters that cannot run a simulation.
var ErrInvalidConfig = errors.New("invalid flock configuration")
