package core

import "testing"

func TestNewTorusClampsSize(t *testing.T) {
	tor := NewTorus(0, -3)
	if tor.W != 1 || tor.H != 1 {
		t.Fatalf("expected 1x1 torus, got %dx%d", tor.W, tor.H)
	}
}

func TestTorusIndexRoundTrip(t *testing.T) {
	tor := NewTorus(5, 3)
	for idx := 0; idx < tor.Len(); idx++ {
		x, y := tor.Coords(idx)
		if got := tor.Index(x, y); got != idx {
			t.Fatalf("Index(Coords(%d)) = %d", idx, got)
		}
	}
}

func TestTorusWrap(t *testing.T) {
	tor := NewTorus(4, 3)
	cases := []struct{ x, y, wx, wy int }{
		{-1, 0, 3, 0},
		{4, 3, 0, 0},
		{-5, -4, 3, 2},
		{2, 1, 2, 1},
	}
	for _, tc := range cases {
		x, y := tor.Wrap(tc.x, tc.y)
		if x != tc.wx || y != tc.wy {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", tc.x, tc.y, x, y, tc.wx, tc.wy)
		}
	}
}

func TestNeighborIndicesMatchNeighbors(t *testing.T) {
	for _, tor := range []Torus{NewTorus(1, 1), NewTorus(2, 1), NewTorus(4, 3), NewTorus(7, 5)} {
		for idx := 0; idx < tor.Len(); idx++ {
			x, y := tor.Coords(idx)
			pts := tor.Neighbors(x, y)
			got := tor.NeighborIndices(idx)
			for i, p := range pts {
				if want := tor.Index(p.X, p.Y); got[i] != want {
					t.Fatalf("%dx%d idx %d neighbour %d: got %d want %d", tor.W, tor.H, idx, i, got[i], want)
				}
			}
		}
	}
}

func TestNeighborsWrapAtCorner(t *testing.T) {
	tor := NewTorus(4, 3)
	got := tor.Neighbors(0, 0)
	want := [4]Point{{1, 0}, {3, 0}, {0, 1}, {0, 2}}
	if got != want {
		t.Fatalf("Neighbors(0,0) = %v, want %v", got, want)
	}
}
