//go:build !ebiten

package app

import (
	"fmt"

	"github.com/charmbracelet/log"

	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/telemetry"
)

// Options mirrors the GUI build so callers compile without the ebiten tag.
type Options struct {
	Scale         int
	StepsPerFrame int
	Writer        persistence.SampleWriter
	Metrics       *telemetry.Metrics
	Logger        *log.Logger
}

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*ising.Simulation, Options) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
