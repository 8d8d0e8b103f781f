package ising

import (
	"fmt"

	"ising-mc/internal/core"
	prng "ising-mc/pkg/core"
)

// Lattice holds the spin grid together with the exchange field cache. Both
// slices have the same row-major layout and are only mutated through flip,
// so exchange[i] always equals the sum of the four neighbour spins of i.
type Lattice struct {
	torus    core.Torus
	spins    []int8
	exchange []int8
}

// NewLattice builds a w×h lattice with every spin up, or with uniformly
// random spins when randomize is set.
func NewLattice(w, h int, randomize bool, rng *prng.RNG) *Lattice {
	t := core.NewTorus(w, h)
	l := &Lattice{
		torus:    t,
		spins:    make([]int8, t.Len()),
		exchange: make([]int8, t.Len()),
	}
	if randomize && rng != nil {
		prng.FillSpins(rng.Source(), l.spins)
	} else {
		for i := range l.spins {
			l.spins[i] = 1
		}
	}
	l.computeExchange()
	return l
}

// Size reports the grid dimensions.
func (l *Lattice) Size() core.Size { return core.Size{W: l.torus.W, H: l.torus.H} }

// Len reports the number of sites.
func (l *Lattice) Len() int { return len(l.spins) }

// Spin returns the spin at (x, y). Coordinates wrap.
func (l *Lattice) Spin(x, y int) int8 { return l.spins[l.at(x, y)] }

// ExchangeField returns the cached neighbour sum at (x, y). Coordinates wrap.
func (l *Lattice) ExchangeField(x, y int) int { return int(l.exchange[l.at(x, y)]) }

func (l *Lattice) at(x, y int) int {
	return l.torus.Index(l.torus.Wrap(x, y))
}

// Neighbors returns the four periodic neighbours of (x, y).
func (l *Lattice) Neighbors(x, y int) [4]core.Point { return l.torus.Neighbors(x, y) }

// Spins returns a copy of the spin grid.
func (l *Lattice) Spins() []int8 { return append([]int8(nil), l.spins...) }

func (l *Lattice) computeExchange() {
	for i := range l.exchange {
		l.exchange[i] = l.neighborSum(i)
	}
}

func (l *Lattice) neighborSum(idx int) int8 {
	var sum int8
	for _, n := range l.torus.NeighborIndices(idx) {
		sum += l.spins[n]
	}
	return sum
}

// flip negates the spin at idx and moves each neighbour's cached field by
// 2*newSpin.
func (l *Lattice) flip(idx int) {
	s := -l.spins[idx]
	l.spins[idx] = s
	for _, n := range l.torus.NeighborIndices(idx) {
		l.exchange[n] += 2 * s
	}
}

// Verify recomputes every neighbour sum and reports the first cell whose
// cached value disagrees.
func (l *Lattice) Verify() error {
	for i := range l.exchange {
		if want := l.neighborSum(i); l.exchange[i] != want {
			x, y := l.torus.Coords(i)
			return fmt.Errorf("exchange field drift at (%d,%d): cached %d, actual %d", x, y, l.exchange[i], want)
		}
	}
	return nil
}
