//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"ising-mc/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Source is what the HUD reads from the simulation each frame.
type Source interface {
	Name() string
	Size() core.Size
	Readout() core.Readout
	Parameters() core.ParameterSnapshot
}

var (
	panelColor   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	headingColor = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	textColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	barBgColor   = color.RGBA{R: 40, G: 40, B: 52, A: 255}
	upColor      = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	downColor    = color.RGBA{R: 70, G: 110, B: 220, A: 255}
)

// HUD renders the readout panel to the right of the lattice view.
type HUD struct {
	src        Source
	width      int
	panel      *ebiten.Image
	lastHeight int
	lines      []Line
	readout    core.Readout
	status     string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(src Source, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{src: src, width: width}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	return h
}

// Width is the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update caches the current readouts.
func (h *HUD) Update(paused, done bool) {
	if h == nil || h.src == nil {
		return
	}
	h.lines = Lines(h.src.Parameters())
	h.readout = h.src.Readout()
	h.status = Status(paused, done)
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.src.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)

	face := basicfont.Face7x13
	y := panelPadding + 10
	text.Draw(h.panel, strings.ToUpper(h.src.Name())+"  "+h.status, face, panelPadding, y, headingColor)
	y += lineHeight + 4

	y = h.drawBar("M", h.readout.Magnetization, y)
	y = h.drawBar("eta", h.readout.OrderParameter, y)
	y += 4

	for _, line := range h.lines {
		if y > height-panelPadding {
			break
		}
		if line.Heading {
			y += 4
			text.Draw(h.panel, line.Text, face, panelPadding, y, headingColor)
		} else {
			text.Draw(h.panel, line.Text, face, panelPadding, y, textColor)
		}
		y += lineHeight
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawBar(label string, value float64, y int) int {
	face := basicfont.Face7x13
	text.Draw(h.panel, label, face, panelPadding, y, textColor)
	x := panelPadding + 32
	w := h.width - x - panelPadding
	if w <= 0 {
		return y + lineHeight
	}
	top := y - barHeight
	h.fillRect(x, top, w, barHeight, barBgColor)
	from, to := BarSpan(value, w)
	fill := upColor
	if value < 0 {
		fill = downColor
	}
	h.fillRect(x+from, top, to-from, barHeight, fill)
	h.fillRect(x+w/2, top-2, 1, barHeight+4, headingColor)
	return y + lineHeight
}

func (h *HUD) fillRect(x, y, w, hgt int, c color.Color) {
	if w <= 0 || hgt <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(hgt))
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	h.panel.DrawImage(h.pixel, op)
}
