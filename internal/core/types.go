package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Readout is the set of scalars a host displays next to the grid.
type Readout struct {
	Temperature    float64
	Field          float64
	Magnetization  float64
	OrderParameter float64
}
