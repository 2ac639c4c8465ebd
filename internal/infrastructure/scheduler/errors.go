package scheduler

import "errors"

var (
	// ErrSweeperNotRunning is returned when submitting work to a stopped sweeper
	ErrSweeperNotRunning = errors.New("sweeper is not running")

	// ErrInvalidConfig is returned when configuration is invalid
	ErrInvalidConfig = errors.New("invalid scheduler configuration")

	// ErrJobTimeout is returned when a sweep job exceeds its timeout
	ErrJobTimeout = errors.New("sweep job timed out")
)
