//go:build ebiten

package app

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ising-mc/internal/ising"
	"ising-mc/internal/persistence"
	"ising-mc/internal/render"
	"ising-mc/internal/telemetry"
	"ising-mc/internal/ui"
)

const hudWidth = 240

// Options are the optional collaborators of a Game.
type Options struct {
	Scale         int
	StepsPerFrame int
	Writer        persistence.SampleWriter
	Metrics       *telemetry.Metrics
	Logger        *log.Logger
}

// Game adapts the Ising simulation to the ebiten.Game interface.
type Game struct {
	sim     *ising.Simulation
	run     *session
	painter *render.GridPainter
	palette render.SpinPalette
	hud     *ui.HUD

	opts     Options
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim *ising.Simulation, opts Options) *Game {
	size := sim.Size()
	opts.Scale = max(opts.Scale, 1)
	opts.StepsPerFrame = max(opts.StepsPerFrame, 1)
	return &Game{
		sim:     sim,
		run:     newSession(sim, opts.Writer, opts.Metrics, opts.Logger),
		painter: render.NewGridPainter(size.W, size.H),
		palette: render.DefaultPalette(),
		hud:     ui.NewHUD(sim, hudWidth),
		opts:    opts,
		seed:    sim.Config().Seed,
	}
}

// Reset starts a new run with the provided seed. Samples of the new run go to
// the same writer with block numbers starting at 1 again.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.tickOnce = false
	g.run.reset(seed)
}

// Update handles input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.run.flush()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	switch {
	case g.tickOnce:
		g.run.advance(1)
	case !g.paused:
		g.run.advance(g.opts.StepsPerFrame)
	}
	g.tickOnce = false
	g.hud.Update(g.paused, g.run.halted)
	return nil
}

// Draw renders the lattice and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.opts.Scale)
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.opts.Scale, g.opts.Scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.opts.Scale + g.hud.Width(), s.H * g.opts.Scale
}
