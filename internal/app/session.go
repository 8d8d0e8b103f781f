package app

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/telemetry"
)

// session steps the simulation for the window and forwards samples. A reset
// starts a new run: block numbers restart at 1 in the same writer, so the
// writer is flushed and the boundary is logged with the run number.
type session struct {
	sim     *ising.Simulation
	writer  persistence.SampleWriter
	metrics *telemetry.Metrics
	logger  *log.Logger

	run    int
	halted bool
}

func newSession(sim *ising.Simulation, w persistence.SampleWriter, m *telemetry.Metrics, logger *log.Logger) *session {
	if logger == nil {
		logger = log.Default()
	}
	return &session{sim: sim, writer: w, metrics: m, logger: logger, run: 1}
}

func (s *session) reset(seed int64) {
	s.flush()
	s.sim.Reset(seed)
	s.halted = false
	s.run++
	s.logger.Info("new run", "run", s.run, "seed", seed)
}

func (s *session) flush() {
	if s.writer == nil {
		return
	}
	if err := s.writer.Flush(); err != nil {
		s.logger.Error("flush samples", "err", err)
	}
}

// advance runs up to steps engine steps and stops early once the run halts.
func (s *session) advance(steps int) {
	if s.halted {
		return
	}
	trials := s.sim.Config().Trials()
	for range steps {
		f, err := s.sim.Step()
		if errors.Is(err, ising.ErrTerminated) {
			s.halted = true
			return
		}
		s.metrics.Observe(f, trials)
		if f.Sample != nil && s.writer != nil {
			if werr := s.writer.WriteSample(*f.Sample); werr != nil {
				s.logger.Error("write sample", "err", werr)
				s.halted = true
				return
			}
		}
		if err != nil {
			s.logger.Error("schedule stopped", "run", s.run, "step", f.Step, "err", err)
			s.halted = true
			s.flush()
			return
		}
		if f.Done {
			s.halted = true
			s.logger.Info("terminated",
				"run", s.run,
				"steps", humanize.Comma(int64(f.Step)),
				"T", f.Temperature,
				"h", f.Field,
			)
			s.flush()
			return
		}
	}
}
