package ising

import (
	"ising-mc/internal/core"
	prng "ising-mc/pkg/core"
)

// Frame is the per-step output handed to the host.
type Frame struct {
	core.Readout
	Step     int
	Accepted int
	// Sample is set on the step that closes an averaging block.
	Sample *Sample
	// Done is set on the step after which the schedule has finished.
	Done bool
}

// Simulation owns the lattice, the control parameters, the schedule and the
// block accumulators. It is not safe for concurrent use.
type Simulation struct {
	cfg Config

	rng     *prng.RNG
	lattice *Lattice
	params  Params
	sched   Schedule
	agg     *Aggregator

	step     int
	accepted int64
	trials   int64
	readout  core.Readout
	done     bool
	display  []uint8
}

// New validates cfg and returns a simulation initialised from cfg.Seed.
func New(cfg Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{cfg: cfg}
	s.Reset(0)
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return "ising" }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() Config { return s.cfg }

// Size reports the lattice dimensions.
func (s *Simulation) Size() core.Size { return core.Size{W: s.cfg.Width, H: s.cfg.Height} }

// Reset rebuilds the lattice, parameters, schedule and accumulators. A zero
// seed reuses the configured seed.
func (s *Simulation) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.rng = prng.NewRNG(seed)
	s.lattice = NewLattice(s.cfg.Width, s.cfg.Height, s.cfg.Randomize, s.rng)
	s.params = Params{Temperature: s.cfg.Temperature, Field: s.cfg.Field}
	s.sched = NewSchedule(s.cfg)
	s.agg = NewAggregator(s.cfg.BlockSize)
	s.step = 0
	s.accepted = 0
	s.trials = 0
	s.done = false
	s.readout = core.Readout{
		Temperature:    s.params.Temperature,
		Field:          s.params.Field,
		Magnetization:  s.lattice.Magnetization(),
		OrderParameter: s.lattice.OrderParameter(),
	}
	if len(s.display) != s.lattice.Len() {
		s.display = make([]uint8, s.lattice.Len())
	}
	s.rebuildDisplay()
}

// Step runs one batch of Metropolis trials, updates the block averages and,
// at a block boundary, records a sample and advances the schedule.
func (s *Simulation) Step() (Frame, error) {
	if s.done {
		return Frame{Readout: s.readout, Step: s.step, Done: true}, ErrTerminated
	}

	trials := s.cfg.Trials()
	accepted := runBatch(s.lattice, s.rng, trials, s.params.Temperature, s.params.Field)
	s.step++
	s.accepted += int64(accepted)
	s.trials += int64(trials)

	m, eta := s.lattice.Magnetization(), s.lattice.OrderParameter()
	s.readout = core.Readout{
		Temperature:    s.params.Temperature,
		Field:          s.params.Field,
		Magnetization:  m,
		OrderParameter: eta,
	}
	s.agg.Observe(m, eta)
	s.rebuildDisplay()

	f := Frame{Readout: s.readout, Step: s.step, Accepted: accepted}
	sample, blockEnd := s.agg.Flush(s.step, s.params.Temperature, s.params.Field)
	if blockEnd {
		f.Sample = &sample
		if !s.sched.Done(s.params, s.step, true) {
			if err := s.sched.Advance(&s.params); err != nil {
				s.done = true
				f.Done = true
				return f, err
			}
		}
	}
	if s.sched.Done(s.params, s.step, blockEnd) {
		s.done = true
		f.Done = true
	}
	return f, nil
}

// Done reports whether the schedule has finished.
func (s *Simulation) Done() bool { return s.done }

// Steps reports the number of completed steps.
func (s *Simulation) Steps() int { return s.step }

// Params returns the current control parameters.
func (s *Simulation) Params() Params { return s.params }

// Schedule exposes the active schedule for inspection.
func (s *Simulation) Schedule() Schedule { return s.sched }

// Readout returns the scalars of the most recent step.
func (s *Simulation) Readout() core.Readout { return s.readout }

// Lattice exposes the lattice for read-only inspection.
func (s *Simulation) Lattice() *Lattice { return s.lattice }

// AcceptanceRatio is accepted flips over trials since the last reset.
func (s *Simulation) AcceptanceRatio() float64 {
	if s.trials == 0 {
		return 0
	}
	return float64(s.accepted) / float64(s.trials)
}

// Cells exposes the display buffer: 1 for up spins, 0 for down spins.
func (s *Simulation) Cells() []uint8 { return s.display }

func (s *Simulation) rebuildDisplay() {
	for i, spin := range s.lattice.spins {
		if spin > 0 {
			s.display[i] = 1
		} else {
			s.display[i] = 0
		}
	}
}
