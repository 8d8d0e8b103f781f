package core

// Point addresses a lattice site by column (X) and row (Y).
type Point struct {
	X, Y int
}

// Torus describes a W×H grid whose edges wrap in both directions. Cells are
// stored in row-major order.
type Torus struct {
	W, H int
}

// NewTorus returns a Torus with the given dimensions. Non-positive dimensions
// are clamped to 1.
func NewTorus(w, h int) Torus {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Torus{W: w, H: h}
}

// Len reports the number of cells.
func (t Torus) Len() int { return t.W * t.H }

// Index returns the linear slice index for coordinates (x, y).
func (t Torus) Index(x, y int) int { return y*t.W + x }

// Coords is the inverse of Index.
func (t Torus) Coords(idx int) (int, int) { return idx % t.W, idx / t.W }

// Wrap applies toroidal wrapping to the provided coordinates.
func (t Torus) Wrap(x, y int) (int, int) {
	x = (x%t.W + t.W) % t.W
	y = (y%t.H + t.H) % t.H
	return x, y
}

// Neighbors returns the four nearest neighbours of (x, y) in the order
// east, west, south, north.
func (t Torus) Neighbors(x, y int) [4]Point {
	return [4]Point{
		{X: (x + 1) % t.W, Y: y},
		{X: (x - 1 + t.W) % t.W, Y: y},
		{X: x, Y: (y + 1) % t.H},
		{X: x, Y: (y - 1 + t.H) % t.H},
	}
}

// NeighborIndices is Neighbors expressed as linear indices.
func (t Torus) NeighborIndices(idx int) [4]int {
	x, y := t.Coords(idx)
	east := x + 1
	if east == t.W {
		east = 0
	}
	west := x - 1
	if west < 0 {
		west = t.W - 1
	}
	south := y + 1
	if south == t.H {
		south = 0
	}
	north := y - 1
	if north < 0 {
		north = t.H - 1
	}
	return [4]int{
		y*t.W + east,
		y*t.W + west,
		south*t.W + x,
		north*t.W + x,
	}
}
