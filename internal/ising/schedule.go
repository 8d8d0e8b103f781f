package ising

import "math"

// Param identifies a control parameter.
type Param int

const (
	ParamTemperature Param = iota
	ParamField
)

func (p Param) String() string {
	if p == ParamField {
		return "field"
	}
	return "temperature"
}

// Params are the control parameters seen by the Metropolis stepper.
type Params struct {
	Temperature float64
	Field       float64
}

// Get returns the value of p.
func (ps Params) Get(p Param) float64 {
	if p == ParamField {
		return ps.Field
	}
	return ps.Temperature
}

func (ps *Params) set(p Param, v float64) error {
	if !finite(v) {
		return ErrNonFinite
	}
	if p == ParamField {
		ps.Field = v
		return nil
	}
	if !(v > 0) {
		return ErrNonPositiveTemperature
	}
	ps.Temperature = v
	return nil
}

// Direction is the leg of a loop schedule.
type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Schedule decides how the control parameters change at block boundaries and
// when the run is over.
type Schedule interface {
	// Advance is called once per completed block.
	Advance(ps *Params) error
	// Done reports whether the run has finished after step steps. blockEnd is
	// set when step closed an averaging block.
	Done(ps Params, step int, blockEnd bool) bool
}

// NewSchedule builds the schedule selected by cfg.Mode. The loop start value
// is taken from the initial parameters.
func NewSchedule(cfg Config) Schedule {
	switch cfg.Mode {
	case ModeTemperatureSweep, ModeFieldSweep:
		return &Sweep{Param: cfg.Mode.Param(), Target: cfg.Target, Increment: cfg.Increment}
	case ModeTemperatureLoop, ModeFieldLoop:
		start := cfg.Temperature
		if cfg.Mode.Param() == ParamField {
			start = cfg.Field
		}
		return &Loop{Param: cfg.Mode.Param(), Target: cfg.Target, Increment: cfg.Increment, Start: start}
	default:
		return &Static{StepBudget: cfg.Target}
	}
}

// tolerance is half an increment, so a schedule lands within reach of its
// target regardless of rounding in the accumulated value.
func tolerance(increment float64) float64 {
	return math.Abs(increment) / 2
}

func near(a, b, eps float64) bool { return math.Abs(a-b) < eps }

// Static leaves the parameters untouched and stops once the step count
// reaches StepBudget. A non-positive budget never stops.
type Static struct {
	StepBudget float64
}

// Advance is a no-op.
func (s *Static) Advance(*Params) error { return nil }

// Done reports whether step has reached the budget.
func (s *Static) Done(_ Params, step int, _ bool) bool {
	return s.StepBudget > 0 && float64(step) >= s.StepBudget
}

// Sweep moves one parameter by Increment per block until it reaches Target.
type Sweep struct {
	Param     Param
	Target    float64
	Increment float64
}

// Advance adds Increment to the swept parameter.
func (s *Sweep) Advance(ps *Params) error {
	return ps.set(s.Param, ps.Get(s.Param)+s.Increment)
}

// Done reports whether a block has ended within half an increment of Target.
func (s *Sweep) Done(ps Params, _ int, blockEnd bool) bool {
	return blockEnd && near(ps.Get(s.Param), s.Target, tolerance(s.Increment))
}

// Loop moves one parameter to Target and then back to Start.
type Loop struct {
	Param     Param
	Target    float64
	Increment float64
	Start     float64
	Direction Direction
}

// Advance turns around at Target, then applies the increment.
func (l *Loop) Advance(ps *Params) error {
	v := ps.Get(l.Param)
	if l.Direction == Forward && near(v, l.Target, tolerance(l.Increment)) {
		l.Direction = Backward
		l.Increment = -l.Increment
	}
	return ps.set(l.Param, v+l.Increment)
}

// Done reports whether a block has ended on the way back near Start.
func (l *Loop) Done(ps Params, _ int, blockEnd bool) bool {
	return blockEnd && l.Direction == Backward && near(ps.Get(l.Param), l.Start, tolerance(l.Increment))
}
