// Package runner drives a simulation to termination and hands its output to
// the storage, frame capture and metrics collaborators.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/render"
	"ising-mc/internal/telemetry"
)

// Runner owns the host loop for one simulation. Only Sim is required.
type Runner struct {
	Sim     *ising.Simulation
	Writer  persistence.SampleWriter
	Frames  *render.FrameRecorder
	Metrics *telemetry.Metrics
	Logger  *log.Logger

	// MaxSteps stops the loop early when positive.
	MaxSteps int
	// ProgressEvery logs a debug line every n steps when positive.
	ProgressEvery int
	// Verify recomputes the exchange field after every step.
	Verify bool
	// OnSample is called after each sample has been written.
	OnSample func(ising.Sample)
}

// Summary describes a finished run.
type Summary struct {
	Steps      int
	Samples    int
	Accepted   int64
	Trials     int64
	Terminated bool
}

// AcceptanceRatio is accepted flips over trials.
func (s Summary) AcceptanceRatio() float64 {
	if s.Trials == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Trials)
}

// Run steps the simulation until its schedule finishes, ctx is cancelled or
// MaxSteps is reached. The writer is flushed on every exit path.
func (r *Runner) Run(ctx context.Context) (sum Summary, err error) {
	if r.Sim == nil {
		return sum, errors.New("runner: no simulation")
	}
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if r.Writer != nil {
		defer func() {
			if ferr := r.Writer.Flush(); ferr != nil {
				err = errors.Join(err, fmt.Errorf("flush samples: %w", ferr))
			}
		}()
	}

	sim := r.Sim
	trials := sim.Config().Trials()
	for !sim.Done() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if r.MaxSteps > 0 && sum.Steps >= r.MaxSteps {
			logger.Info("step limit reached", "steps", humanize.Comma(int64(sum.Steps)))
			return sum, nil
		}

		f, stepErr := sim.Step()
		if errors.Is(stepErr, ising.ErrTerminated) {
			break
		}
		sum.Steps = f.Step
		sum.Accepted += int64(f.Accepted)
		sum.Trials += int64(trials)
		r.Metrics.Observe(f, trials)

		if r.Verify {
			if verr := sim.Lattice().Verify(); verr != nil {
				return sum, fmt.Errorf("step %d: %w", f.Step, verr)
			}
		}
		if f.Sample != nil {
			if err := r.record(logger, *f.Sample); err != nil {
				return sum, err
			}
			sum.Samples++
		}
		if r.Frames.Due(f.Step) || (f.Done && r.Frames != nil) {
			if err := r.Frames.Capture(f.Step, sim.Cells(), sim.Size()); err != nil {
				return sum, err
			}
		}
		if r.ProgressEvery > 0 && f.Step%r.ProgressEvery == 0 {
			logger.Debug("progress",
				"step", humanize.Comma(int64(f.Step)),
				"T", f.Temperature,
				"h", f.Field,
				"M", f.Magnetization,
				"acceptance", fmt.Sprintf("%.3f", float64(f.Accepted)/float64(trials)),
			)
		}
		if stepErr != nil {
			return sum, stepErr
		}
	}

	sum.Terminated = sim.Done()
	logger.Info("terminated",
		"steps", humanize.Comma(int64(sum.Steps)),
		"samples", sum.Samples,
		"acceptance", fmt.Sprintf("%.4f", sum.AcceptanceRatio()),
	)
	return sum, nil
}

func (r *Runner) record(logger *log.Logger, s ising.Sample) error {
	logger.Info("sample",
		"block", s.Block,
		"step", s.Step,
		"T", s.Temperature,
		"h", s.Field,
		"M", fmt.Sprintf("%.4f", s.Magnetization),
		"eta", fmt.Sprintf("%.4f", s.OrderParameter),
	)
	if r.Writer != nil {
		if err := r.Writer.WriteSample(s); err != nil {
			return fmt.Errorf("write sample %d: %w", s.Block, err)
		}
	}
	if r.OnSample != nil {
		r.OnSample(s)
	}
	return nil
}
