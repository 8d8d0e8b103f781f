package ising

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Mode selects how the control parameters evolve between blocks.
type Mode int

const (
	// ModeNone keeps temperature and field fixed and stops after a step budget.
	ModeNone Mode = iota
	// ModeTemperatureSweep moves the temperature towards the target once.
	ModeTemperatureSweep
	// ModeTemperatureLoop moves the temperature to the target and back.
	ModeTemperatureLoop
	// ModeFieldSweep moves the field towards the target once.
	ModeFieldSweep
	// ModeFieldLoop moves the field to the target and back.
	ModeFieldLoop
)

var modeNames = map[Mode]string{
	ModeNone:             "none",
	ModeTemperatureSweep: "tsweep",
	ModeTemperatureLoop:  "tloop",
	ModeFieldSweep:       "fsweep",
	ModeFieldLoop:        "floop",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode maps a mode name to a Mode. An empty name selects ModeNone.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return ModeNone, nil
	}
	for m, n := range modeNames {
		if n == name {
			return m, nil
		}
	}
	return ModeNone, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Param returns the control parameter a mode drives.
func (m Mode) Param() Param {
	switch m {
	case ModeFieldSweep, ModeFieldLoop:
		return ParamField
	default:
		return ParamTemperature
	}
}

func (m Mode) valid() bool {
	_, ok := modeNames[m]
	return ok
}

// Config controls the lattice, the initial control parameters and the schedule.
type Config struct {
	Width  int
	Height int

	Seed      int64
	Randomize bool

	Temperature float64
	Field       float64

	Mode Mode
	// Target is the sweep/loop target value, or the step budget in ModeNone.
	Target    float64
	Increment float64

	// BlockSize is the number of steps averaged into one recorded sample.
	BlockSize int
	// TrialsPerStep defaults to Width*Height when zero.
	TrialsPerStep int
}

// DefaultConfig returns the standard configuration: a 128×128 random start
// cooled from T=4 to T=0.5.
func DefaultConfig() Config {
	return Config{
		Width:       128,
		Height:      128,
		Seed:        1337,
		Randomize:   true,
		Temperature: 4,
		Field:       0,
		Mode:        ModeTemperatureSweep,
		Target:      0.5,
		Increment:   -0.05,
		BlockSize:   50,
	}
}

// Trials returns the number of Metropolis trials performed per step.
func (c Config) Trials() int {
	if c.TrialsPerStep > 0 {
		return c.TrialsPerStep
	}
	return c.Width * c.Height
}

// Validate reports the first configuration error, if any.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Value: c.Width, Err: ErrInvalidSize}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Value: c.Height, Err: ErrInvalidSize}
	}
	if c.BlockSize <= 0 {
		return &ConfigError{Field: "block", Value: c.BlockSize, Err: ErrInvalidBlockSize}
	}
	if c.TrialsPerStep < 0 {
		return &ConfigError{Field: "trials", Value: c.TrialsPerStep, Err: ErrInvalidTrials}
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"temperature", c.Temperature},
		{"field", c.Field},
		{"target", c.Target},
		{"increment", c.Increment},
	} {
		if !finite(f.value) {
			return &ConfigError{Field: f.name, Value: f.value, Err: ErrNonFinite}
		}
	}
	if !(c.Temperature > 0) {
		return &ConfigError{Field: "temperature", Value: c.Temperature, Err: ErrInvalidTemperature}
	}
	if !c.Mode.valid() {
		return &ConfigError{Field: "mode", Value: int(c.Mode), Err: ErrUnknownMode}
	}
	switch c.Mode {
	case ModeTemperatureSweep, ModeTemperatureLoop:
		if !(c.Target > 0) {
			return &ConfigError{Field: "target", Value: c.Target, Err: ErrInvalidTarget}
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values keep their defaults; Validate catches the rest.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Randomize = parsed
		}
	}
	if v, ok := cfg["temperature"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = parsed
		}
	}
	if v, ok := cfg["field"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Field = parsed
		}
	}
	if v, ok := cfg["mode"]; ok {
		if parsed, err := ParseMode(v); err == nil {
			c.Mode = parsed
		} else {
			c.Mode = Mode(-1)
		}
	}
	if v, ok := cfg["target"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Target = parsed
		}
	}
	if v, ok := cfg["increment"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Increment = parsed
		}
	}
	if v, ok := cfg["block"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.BlockSize = parsed
		}
	}
	if v, ok := cfg["trials"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.TrialsPerStep = parsed
		}
	}
	return c
}
