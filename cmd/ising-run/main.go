// Command ising-run runs one simulation headless and records its samples.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"ising-mc/internal/config"
	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/plot"
	"ising-mc/internal/render"
	"ising-mc/internal/runner"
	"ising-mc/internal/telemetry"
)

func main() {
	settings, err := config.Load("ising-run", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           settings.LogLevel,
		ReportTimestamp: true,
		Prefix:          "ising-run",
	})

	sim, err := ising.New(settings.Sim)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, logger, settings, sim); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, settings config.Settings, sim *ising.Simulation) (err error) {
	var (
		writers []persistence.SampleWriter
		memory  *persistence.Memory
		store   *persistence.SQLiteStore
	)
	defer func() {
		for _, w := range writers {
			if cerr := w.Close(); cerr != nil {
				err = errors.Join(err, cerr)
			}
		}
		if store != nil {
			err = errors.Join(err, store.Close())
		}
	}()

	if path := settings.Output.CSV; path != "" {
		w, err := persistence.CreateCSV(path)
		if err != nil {
			return fmt.Errorf("open csv: %w", err)
		}
		writers = append(writers, w)
	}
	if path := settings.Output.DB; path != "" {
		if store, err = persistence.OpenSQLite(path); err != nil {
			return err
		}
		w, err := store.BeginRun(settings.Sim)
		if err != nil {
			return err
		}
		logger.Info("recording run", "db", path, "run", w.RunID())
		writers = append(writers, w)
	}
	if settings.Output.Chart != "" {
		memory = &persistence.Memory{}
		writers = append(writers, memory)
	}

	var frames *render.FrameRecorder
	if dir := settings.Output.FramesDir; dir != "" {
		every := settings.Output.FrameEvery
		if every <= 0 {
			every = settings.Sim.BlockSize
		}
		if frames, err = render.NewFrameRecorder(dir, every, settings.Output.FrameScale); err != nil {
			return err
		}
	}

	var metrics *telemetry.Metrics
	if addr := settings.MetricsAddr; addr != "" {
		metrics = telemetry.New(prometheus.Labels{"seed": strconv.FormatInt(settings.Sim.Seed, 10)})
		stop, err := serveMetrics(logger, addr, metrics.Handler())
		if err != nil {
			return err
		}
		defer stop()
	}

	r := &runner.Runner{
		Sim:           sim,
		Writer:        persistence.Multi(writers...),
		Frames:        frames,
		Metrics:       metrics,
		Logger:        logger.WithPrefix("runner"),
		MaxSteps:      settings.MaxSteps,
		ProgressEvery: settings.ProgressEvery,
		Verify:        settings.Verify,
	}
	start := time.Now()
	sum, err := r.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("done",
		"steps", sum.Steps,
		"samples", sum.Samples,
		"terminated", sum.Terminated,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	if frames != nil {
		logger.Info("frames written", "dir", frames.Dir, "count", frames.Written())
	}

	if memory != nil {
		path := settings.Output.Chart
		title := fmt.Sprintf("%dx%d %s seed %d", settings.Sim.Width, settings.Sim.Height, settings.Sim.Mode, settings.Sim.Seed)
		if err := plot.WriteFile(path, title, memory.Samples, plot.AxisFor(settings.Sim.Mode)); err != nil {
			if !errors.Is(err, plot.ErrTooFewSamples) {
				return err
			}
			logger.Warn("chart skipped", "err", err)
		} else {
			logger.Info("chart written", "path", path)
		}
	}
	return nil
}

func serveMetrics(logger *log.Logger, addr string, h http.Handler) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("net listen: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info("serving metrics", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "err", err)
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("metrics shutdown", "err", err)
		}
	}, nil
}
