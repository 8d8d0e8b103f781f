package ising

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopTurnsAroundAndAdvancesInOneCall(t *testing.T) {
	loop := &Loop{Param: ParamTemperature, Target: 3, Increment: 0.5, Start: 2}
	ps := Params{Temperature: 3}

	require.NoError(t, loop.Advance(&ps))
	assert.Equal(t, Backward, loop.Direction)
	assert.Equal(t, -0.5, loop.Increment)
	assert.InDelta(t, 2.5, ps.Temperature, 1e-12)
	assert.False(t, loop.Done(ps, 0, true))

	require.NoError(t, loop.Advance(&ps))
	assert.Equal(t, Backward, loop.Direction, "a loop turns around only once")
	assert.True(t, loop.Done(ps, 0, true))
	assert.False(t, loop.Done(ps, 0, false))
}

func TestLoopIsNotDoneAtStartWhileForward(t *testing.T) {
	loop := &Loop{Param: ParamField, Target: 1, Increment: 0.25, Start: 0}
	assert.False(t, loop.Done(Params{Field: 0}, 0, true))
}

func TestSweepAdvanceAndDone(t *testing.T) {
	sweep := &Sweep{Param: ParamField, Target: -1, Increment: -0.5}
	ps := Params{Temperature: 2, Field: 0}

	require.NoError(t, sweep.Advance(&ps))
	assert.False(t, sweep.Done(ps, 0, true))
	require.NoError(t, sweep.Advance(&ps))
	assert.True(t, sweep.Done(ps, 0, true))
	assert.Equal(t, 2.0, ps.Temperature)
}

func TestZeroIncrementNeverFinishes(t *testing.T) {
	sweep := &Sweep{Param: ParamTemperature, Target: 1, Increment: 0}
	ps := Params{Temperature: 2}
	for i := 0; i < 100; i++ {
		require.NoError(t, sweep.Advance(&ps))
		require.False(t, sweep.Done(ps, i, true))
	}
}

func TestSweepRefusesNonPositiveTemperature(t *testing.T) {
	sweep := &Sweep{Param: ParamTemperature, Target: 1, Increment: -1}
	ps := Params{Temperature: 1}
	assert.ErrorIs(t, sweep.Advance(&ps), ErrNonPositiveTemperature)
	assert.Equal(t, 1.0, ps.Temperature)
}

func TestSchedulesRefuseNonFiniteValues(t *testing.T) {
	field := &Sweep{Param: ParamField, Target: 1, Increment: math.NaN()}
	ps := Params{Temperature: 1, Field: 0.5}
	assert.ErrorIs(t, field.Advance(&ps), ErrNonFinite)
	assert.Equal(t, 0.5, ps.Field)

	hot := &Loop{Param: ParamTemperature, Target: 3, Increment: math.Inf(1), Start: 1}
	assert.ErrorIs(t, hot.Advance(&ps), ErrNonFinite)
	assert.Equal(t, 1.0, ps.Temperature)
}

func TestStaticBudget(t *testing.T) {
	s := &Static{StepBudget: 10}
	ps := Params{Temperature: 1}
	require.NoError(t, s.Advance(&ps))
	assert.Equal(t, Params{Temperature: 1}, ps)
	assert.False(t, s.Done(ps, 9, false))
	assert.True(t, s.Done(ps, 10, false))

	fractional := &Static{StepBudget: 7.5}
	assert.False(t, fractional.Done(ps, 7, false))
	assert.True(t, fractional.Done(ps, 8, false))

	huge := &Static{StepBudget: 1e300}
	assert.False(t, huge.Done(ps, 1<<30, true))

	unbounded := &Static{}
	assert.False(t, unbounded.Done(ps, 1<<30, true))
}

func TestNewScheduleSelectsVariant(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Mode = ModeTemperatureSweep
	assert.IsType(t, &Sweep{}, NewSchedule(cfg))

	cfg.Mode = ModeFieldLoop
	cfg.Field = 0.75
	loop, ok := NewSchedule(cfg).(*Loop)
	require.True(t, ok)
	assert.Equal(t, ParamField, loop.Param)
	assert.Equal(t, 0.75, loop.Start)
	assert.Equal(t, Forward, loop.Direction)

	cfg.Mode = ModeNone
	cfg.Target = 300
	static, ok := NewSchedule(cfg).(*Static)
	require.True(t, ok)
	assert.Equal(t, 300.0, static.StepBudget)
}
