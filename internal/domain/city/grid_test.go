package city

import "testing"

func TestParseGrid_RejectsWrongDimensions(t *testing.T) {
	if _, err := ParseGrid("[[1,2],[3,4]]"); err != ErrBadGridSize {
		t.Fatalf("expected ErrBadGridSize, got %v", err)
	}

	// Right row count, one short row.
	ragged := EmptyGrid()
	ragged[7] = ragged[7][:GridSize-1]
	if _, err := GridFromRows(ragged); err != ErrBadGridSize {
		t.Fatalf("expected ErrBadGridSize for ragged grid, got %v", err)
	}
}

func TestParseGrid_RejectsGarbage(t *testing.T) {
	if _, err := ParseGrid("not json"); err != ErrBadGridSize {
		t.Fatalf("expected ErrBadGridSize, got %v", err)
	}
}

func TestParseGrid_RoundTrip(t *testing.T) {
	g := DefaultGrid()
	g[3][4] = int(CellPark)

	parsed, err := ParseGrid(g.Encode())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.KindAt(3, 4) != CellPark {
		t.Fatalf("expected park at (3,4), got %v", parsed.KindAt(3, 4))
	}
}

func TestParseStoredGrid_DegradesToEmpty(t *testing.T) {
	g := ParseStoredGrid("{broken")
	if len(g) != GridSize {
		t.Fatalf("expected full-size fallback grid")
	}
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			if g[x][y] != 0 {
				t.Fatalf("fallback grid must be empty, found %d at (%d,%d)", g[x][y], x, y)
			}
		}
	}
}

func TestDefaultGrid_LockedBoundary(t *testing.T) {
	g := DefaultGrid()
	for x := 0; x < GridSize; x++ {
		if g.KindAt(x, GridSize-2) != CellLockedRoad4Lane || g.KindAt(x, GridSize-1) != CellLockedRoad4Lane {
			t.Fatalf("bottom two rows must be locked boundary road")
		}
	}
	if g.KindAt(0, 0) != CellEmpty {
		t.Fatalf("interior should start empty")
	}
}

func TestGrid_CloneIsIndependent(t *testing.T) {
	g := DefaultGrid()
	c := g.Clone()
	c[0][0] = int(CellPark)
	if g[0][0] == int(CellPark) {
		t.Fatalf("clone must not alias the original")
	}
}
