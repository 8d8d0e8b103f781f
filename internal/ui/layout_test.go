package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ising-mc/internal/core"
)

func TestLinesGroupsAndFormatting(t *testing.T) {
	snap := core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Empty"},
		{Name: "Readout", Params: []core.Parameter{
			core.FloatParam("temperature", "Temperature", 2.269),
			core.IntParam("step", "Step", 42),
			core.StringParam("mode", "Mode", "tloop"),
		}},
	}}

	lines := Lines(snap)
	require.Len(t, lines, 4)
	assert.Equal(t, Line{Text: "Readout", Heading: true}, lines[0])
	assert.Equal(t, "Temperature       2.2690", lines[1].Text)
	assert.Equal(t, "Step              42", lines[2].Text)
	assert.Equal(t, "Mode              tloop", lines[3].Text)
}

func TestBarSpan(t *testing.T) {
	cases := []struct {
		value    float64
		from, to int
	}{
		{0, 50, 50},
		{1, 50, 100},
		{-1, 0, 50},
		{0.5, 50, 75},
		{-0.5, 25, 50},
		{3, 50, 100},
		{-7, 0, 50},
	}
	for _, tc := range cases {
		from, to := BarSpan(tc.value, 100)
		assert.Equal(t, tc.from, from, "value %v", tc.value)
		assert.Equal(t, tc.to, to, "value %v", tc.value)
	}

	from, to := BarSpan(1, 0)
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "running", Status(false, false))
	assert.Equal(t, "paused", Status(true, false))
	assert.Equal(t, "terminated", Status(true, true))
}
