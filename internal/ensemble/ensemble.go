// Package ensemble runs independent simulations in parallel.
package ensemble

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/runner"
)

// Job is one simulation of the ensemble.
type Job struct {
	Name   string
	Config ising.Config
}

// Result pairs a job with the summary of its run.
type Result struct {
	Job     Job
	Summary runner.Summary
	// Last is the final recorded sample, if any.
	Last *ising.Sample
}

// OpenFunc returns the writer for a job's samples. It may return nil.
type OpenFunc func(Job) (persistence.SampleWriter, error)

// Run executes every job with at most workers running at once. Each job has
// its own engine and random source. The first failure cancels the remaining
// jobs. Results are returned in job order.
func Run(ctx context.Context, jobs []Job, workers int, open OpenFunc, logger *log.Logger) ([]Result, error) {
	// Validate up front so a bad job fails before any simulation starts.
	sims := make([]*ising.Simulation, len(jobs))
	for i, job := range jobs {
		sim, err := ising.New(job.Config)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", job.Name, err)
		}
		sims[i] = sim
	}

	results := make([]Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, job := range jobs {
		g.Go(func() error {
			var w persistence.SampleWriter
			if open != nil {
				var err error
				if w, err = open(job); err != nil {
					return fmt.Errorf("job %s: open writer: %w", job.Name, err)
				}
			}
			res := Result{Job: job}
			r := &runner.Runner{
				Sim:      sims[i],
				Writer:   w,
				OnSample: func(s ising.Sample) { res.Last = &s },
			}
			if logger != nil {
				r.Logger = logger.WithPrefix(job.Name)
			}
			sum, err := r.Run(ctx)
			if w != nil {
				if cerr := w.Close(); cerr != nil && err == nil {
					err = cerr
				}
			}
			if err != nil {
				return fmt.Errorf("job %s: %w", job.Name, err)
			}
			res.Summary = sum
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
