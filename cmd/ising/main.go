//go:build ebiten

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/pflag"

	"ising-mc/internal/app"
	"ising-mc/internal/config"
	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
)

func main() {
	settings, err := config.Load("ising", os.Args[1:])
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
		Prefix:          "gui",
	})

	sim, err := ising.New(settings.Sim)
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(2)
	}

	opts := app.Options{
		Scale:         settings.GUI.Scale,
		StepsPerFrame: settings.GUI.StepsPerFrame,
		Logger:        logger,
	}
	if settings.Output.CSV != "" {
		w, err := persistence.CreateCSV(settings.Output.CSV)
		if err != nil {
			logger.Fatal("open samples", "err", err)
		}
		defer w.Close()
		opts.Writer = w
	}

	game := app.New(sim, opts)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle(fmt.Sprintf("ising %dx%d %s", settings.Sim.Width, settings.Sim.Height, settings.Sim.Mode))
	ebiten.SetTPS(settings.GUI.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
