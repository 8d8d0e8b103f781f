package ising

import (
	"testing"

	"ising-mc/internal/core"
	prng "ising-mc/pkg/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighborsWrapAround(t *testing.T) {
	l := NewLattice(4, 3, false, nil)

	got := l.Neighbors(0, 0)
	want := [4]core.Point{{X: 1, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}}
	assert.Equal(t, want, got)

	got = l.Neighbors(3, 2)
	want = [4]core.Point{{X: 0, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 0}, {X: 3, Y: 1}}
	assert.Equal(t, want, got)
}

func TestSpinAccessWraps(t *testing.T) {
	l := NewLattice(5, 4, true, prng.NewRNG(11))
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			assert.Equal(t, l.Spin(x, y), l.Spin(x-5, y+4))
			assert.Equal(t, l.ExchangeField(x, y), l.ExchangeField(x+5, y-4))
		}
	}
}

func TestUniformLatticeInitialisation(t *testing.T) {
	l := NewLattice(6, 5, false, prng.NewRNG(1))
	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			require.EqualValues(t, 1, l.Spin(x, y))
			require.Equal(t, 4, l.ExchangeField(x, y))
		}
	}
	require.NoError(t, l.Verify())
}

func TestRandomLatticeHasBothSpins(t *testing.T) {
	l := NewLattice(32, 32, true, prng.NewRNG(7))
	up, down := 0, 0
	for _, s := range l.Spins() {
		switch s {
		case 1:
			up++
		case -1:
			down++
		default:
			t.Fatalf("unexpected spin value %d", s)
		}
	}
	assert.Positive(t, up)
	assert.Positive(t, down)
	require.NoError(t, l.Verify())
}

func TestExchangeFieldTracksFlips(t *testing.T) {
	rng := prng.NewRNG(42)
	l := NewLattice(7, 5, true, rng)

	for i := 0; i < 5000; i++ {
		l.flip(rng.IntN(l.Len()))
		if i%97 == 0 {
			require.NoError(t, l.Verify(), "after %d flips", i+1)
		}
	}
	require.NoError(t, l.Verify())

	for i, e := range l.exchange {
		if e < -4 || e > 4 || e%2 != 0 {
			t.Fatalf("cell %d has exchange field %d outside {-4,-2,0,2,4}", i, e)
		}
	}
}

func TestVerifyReportsDrift(t *testing.T) {
	l := NewLattice(3, 3, false, nil)
	l.spins[4] = -1
	assert.Error(t, l.Verify())
}

func TestSmallestTorusNeighbours(t *testing.T) {
	// On a 1×1 torus every neighbour is the site itself.
	l := NewLattice(1, 1, false, nil)
	require.Equal(t, 4, l.ExchangeField(0, 0))
	l.flip(0)
	require.NoError(t, l.Verify())
	require.Equal(t, -4, l.ExchangeField(0, 0))
}
