package ui

import (
	"fmt"
	"strconv"

	"ising-mc/internal/core"
)

const (
	panelPadding = 12
	lineHeight   = 16
	labelWidth   = 17
	barHeight    = 8
)

// Line is one row of HUD text.
type Line struct {
	Text    string
	Heading bool
}

// Lines flattens a parameter snapshot into HUD rows. Floats are shown with
// four decimals so the panel width stays stable while values change.
func Lines(snap core.ParameterSnapshot) []Line {
	var out []Line
	for _, g := range snap.Groups {
		if len(g.Params) == 0 {
			continue
		}
		out = append(out, Line{Text: g.Name, Heading: true})
		for _, p := range g.Params {
			out = append(out, Line{Text: fmt.Sprintf("%-*s %s", labelWidth, p.Label, formatValue(p))})
		}
	}
	return out
}

func formatValue(p core.Parameter) string {
	if p.Type != core.ParamTypeFloat {
		return p.Value
	}
	v, err := strconv.ParseFloat(p.Value, 64)
	if err != nil {
		return "--"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// BarSpan returns the pixel span [from, to) a value in [-1, 1] fills on a
// bar of the given width. The bar is anchored at its centre; values outside
// the range are clamped.
func BarSpan(value float64, width int) (from, to int) {
	if width <= 0 {
		return 0, 0
	}
	value = max(-1, min(1, value))
	mid := width / 2
	end := mid + int(value*float64(width-mid))
	if value < 0 {
		end = mid + int(value*float64(mid))
	}
	if end < mid {
		return end, mid
	}
	return mid, end
}

// Status names the run state shown in the panel title.
func Status(paused, done bool) string {
	switch {
	case done:
		return "terminated"
	case paused:
		return "paused"
	default:
		return "running"
	}
}
