package ising

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSize        = errors.New("ising: lattice dimensions must be positive")
	ErrInvalidBlockSize   = errors.New("ising: block size must be positive")
	ErrInvalidTrials      = errors.New("ising: trials per step must not be negative")
	ErrInvalidTemperature = errors.New("ising: temperature must be positive")
	ErrInvalidTarget      = errors.New("ising: temperature target must be positive")
	ErrUnknownMode        = errors.New("ising: unknown schedule mode")
	ErrNonFinite          = errors.New("ising: value must be a finite number")

	// ErrNonPositiveTemperature is returned when a schedule would drive the
	// temperature to zero or below.
	ErrNonPositiveTemperature = errors.New("ising: temperature schedule reached a non-positive value")
	// ErrTerminated is returned by Step once the schedule has finished.
	ErrTerminated = errors.New("ising: simulation terminated")
)

// ConfigError names the offending configuration field.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
