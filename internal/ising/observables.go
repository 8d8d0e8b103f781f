package ising

// Magnetization is the mean spin, in [-1, 1].
func (l *Lattice) Magnetization() float64 {
	sum := 0
	for _, s := range l.spins {
		sum += int(s)
	}
	return float64(sum) / float64(len(l.spins))
}

// OrderParameter is the normalised nearest-neighbour correlation
// sum(exchange*spin) / (4N), in [-1, 1].
func (l *Lattice) OrderParameter() float64 {
	sum := 0
	for i, s := range l.spins {
		sum += int(l.exchange[i]) * int(s)
	}
	return float64(sum) / float64(4*len(l.spins))
}

// Sample is one recorded block average.
type Sample struct {
	Block          int
	Step           int
	Temperature    float64
	Field          float64
	Magnetization  float64
	OrderParameter float64
}

// Aggregator accumulates per-step observables into block averages.
type Aggregator struct {
	blockSize int
	blocks    int
	sumM      float64
	sumEta    float64
}

// NewAggregator returns an Aggregator averaging over blockSize steps.
func NewAggregator(blockSize int) *Aggregator {
	if blockSize <= 0 {
		blockSize = 1
	}
	return &Aggregator{blockSize: blockSize}
}

// Observe adds one step's magnetization and order parameter to the running sums.
func (a *Aggregator) Observe(m, eta float64) {
	n := float64(a.blockSize)
	a.sumM += m / n
	a.sumEta += eta / n
}

// Flush emits a sample when step closes a block and resets the sums.
func (a *Aggregator) Flush(step int, temperature, field float64) (Sample, bool) {
	if step <= 0 || step%a.blockSize != 0 {
		return Sample{}, false
	}
	a.blocks++
	s := Sample{
		Block:          a.blocks,
		Step:           step,
		Temperature:    temperature,
		Field:          field,
		Magnetization:  a.sumM,
		OrderParameter: a.sumEta,
	}
	a.sumM, a.sumEta = 0, 0
	return s, true
}

// Pending returns the current partial block sums.
func (a *Aggregator) Pending() (m, eta float64) { return a.sumM, a.sumEta }

// Blocks reports how many samples have been emitted.
func (a *Aggregator) Blocks() int { return a.blocks }
