// Command ising-scan runs one schedule for every combination of seeds and
// lattice sizes in parallel and stores all samples in one SQLite file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"ising-mc/internal/config"
	"ising-mc/internal/ensemble"
	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
)

func main() {
	flags := config.NewFlagSet("ising-scan")
	seeds := flags.Int64Slice("seeds", []int64{1, 2, 3, 4}, "seeds to run")
	sizes := flags.IntSlice("sizes", []int{32, 64}, "square lattice sizes to run")
	workers := flags.Int("workers", runtime.NumCPU(), "concurrent simulations")

	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	settings, err := config.FromFlags(flags)
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           settings.LogLevel,
		ReportTimestamp: true,
		Prefix:          "scan",
	})

	jobs := buildJobs(settings.Sim, *seeds, *sizes)
	if len(jobs) == 0 {
		logger.Error("nothing to run", "seeds", *seeds, "sizes", *sizes)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logger, os.Stdout, settings, jobs, *workers); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

// buildJobs expands every seed and size into a job based on base.
func buildJobs(base ising.Config, seeds []int64, sizes []int) []ensemble.Job {
	var jobs []ensemble.Job
	for _, size := range sizes {
		for _, seed := range seeds {
			cfg := base
			cfg.Width, cfg.Height = size, size
			cfg.Seed = seed
			jobs = append(jobs, ensemble.Job{
				Name:   fmt.Sprintf("L%d-s%d", size, seed),
				Config: cfg,
			})
		}
	}
	return jobs
}

func run(ctx context.Context, logger *log.Logger, out io.Writer, settings config.Settings, jobs []ensemble.Job, workers int) (err error) {
	open := func(ensemble.Job) (persistence.SampleWriter, error) { return &persistence.Memory{}, nil }
	if path := settings.Output.DB; path != "" {
		var store *persistence.SQLiteStore
		if store, err = persistence.OpenSQLite(path); err != nil {
			return err
		}
		defer func() { err = errors.Join(err, store.Close()) }()
		open = func(j ensemble.Job) (persistence.SampleWriter, error) {
			w, err := store.BeginRun(j.Config)
			if err != nil {
				return nil, err
			}
			logger.Debug("run registered", "job", j.Name, "run", w.RunID())
			return w, nil
		}
	}

	logger.Info("scanning", "runs", len(jobs), "workers", workers, "mode", settings.Sim.Mode)
	start := time.Now()
	results, err := ensemble.Run(ctx, jobs, workers, open, logger)
	if err != nil {
		return err
	}
	logger.Info("scan finished", "elapsed", time.Since(start).Round(time.Millisecond))

	for _, res := range results {
		line := fmt.Sprintf("%-12s steps=%-8s samples=%-5d acceptance=%.4f",
			res.Job.Name,
			humanize.Comma(int64(res.Summary.Steps)),
			res.Summary.Samples,
			res.Summary.AcceptanceRatio(),
		)
		if s := res.Last; s != nil {
			line += fmt.Sprintf(" T=%.4f h=%.4f M=%+.4f eta=%+.4f", s.Temperature, s.Field, s.Magnetization, s.OrderParameter)
		}
		fmt.Fprintln(out, line)
	}
	return nil
}
