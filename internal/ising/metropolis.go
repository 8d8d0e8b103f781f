package ising

import (
	"math"

	prng "ising-mc/pkg/core"
)

// AcceptanceProbability is the Metropolis rule min(1, exp(-dE/T)) for a move
// that changes the energy by dE. Uphill moves are never accepted at T <= 0.
func AcceptanceProbability(dE, temperature float64) float64 {
	if dE <= 0 {
		return 1
	}
	if temperature <= 0 {
		return 0
	}
	return math.Exp(-dE / temperature)
}

// energyChange is the energy cost of flipping a spin s whose neighbours sum to
// exchange, with unit coupling and external field h.
func energyChange(s int8, exchange int8, h float64) float64 {
	return 2 * float64(s) * (float64(exchange) + h)
}

// boltzmannTable caches acceptance probabilities for the ten (spin, exchange)
// combinations at fixed T and h.
type boltzmannTable [2][5]float64

func newBoltzmannTable(temperature, h float64) boltzmannTable {
	var t boltzmannTable
	for si, s := range [2]int8{1, -1} {
		for ei := range t[si] {
			exchange := int8(2*ei - 4)
			t[si][ei] = AcceptanceProbability(energyChange(s, exchange, h), temperature)
		}
	}
	return t
}

func (t *boltzmannTable) lookup(s, exchange int8) float64 {
	si := 0
	if s < 0 {
		si = 1
	}
	return t[si][(exchange+4)/2]
}

// runBatch performs trials single-spin-flip Metropolis trials and returns the
// number of accepted flips.
func runBatch(l *Lattice, rng *prng.RNG, trials int, temperature, h float64) int {
	table := newBoltzmannTable(temperature, h)
	n := l.Len()
	accepted := 0
	for range trials {
		idx := rng.IntN(n)
		p := table.lookup(l.spins[idx], l.exchange[idx])
		if !(p >= 1) && rng.Float64() >= p {
			continue
		}
		l.flip(idx)
		accepted++
	}
	return accepted
}
