package city

import (
	"encoding/json"
	"errors"
)

var ErrBadGridSize = errors.New("grid must be 48x48")

// Grid is a square matrix of raw cell codes, indexed [x][y].
type Grid [][]int

func EmptyGrid() Grid {
	g := make(Grid, GridSize)
	for x := range g {
		g[x] = make([]int, GridSize)
	}
	return g
}

// DefaultGrid is the starting map for a new city: open land with the two
// bottom rows pre-built as the locked boundary road.
func DefaultGrid() Grid {
	g := EmptyGrid()
	for x := 0; x < GridSize; x++ {
		g[x][GridSize-2] = int(CellLockedRoad4Lane)
		g[x][GridSize-1] = int(CellLockedRoad4Lane)
	}
	return g
}

// GridFromRows validates an already-decoded matrix. Dimensions are a hard
// invariant; cell codes are not, unknown codes read as empty land.
func GridFromRows(rows [][]int) (Grid, error) {
	if len(rows) != GridSize {
		return nil, ErrBadGridSize
	}
	for _, row := range rows {
		if len(row) != GridSize {
			return nil, ErrBadGridSize
		}
	}
	return Grid(rows), nil
}

// ParseGrid decodes a JSON grid and enforces its shape.
func ParseGrid(data string) (Grid, error) {
	var rows [][]int
	if err := json.Unmarshal([]byte(data), &rows); err != nil {
		return nil, ErrBadGridSize
	}
	return GridFromRows(rows)
}

// ParseStoredGrid decodes a grid that came from storage. Corrupt stored data
// degrades to an empty grid: read paths serve viewers who did not cause the
// corruption.
func ParseStoredGrid(data string) Grid {
	g, err := ParseGrid(data)
	if err != nil {
		return EmptyGrid()
	}
	return g
}

func (g Grid) Encode() string {
	b, err := json.Marshal([][]int(g))
	if err != nil {
		return EmptyGrid().Encode()
	}
	return string(b)
}

func (g Grid) KindAt(x, y int) CellKind {
	return KindOf(g[x][y])
}

func (g Grid) Clone() Grid {
	out := make(Grid, len(g))
	for x := range g {
		out[x] = append([]int(nil), g[x]...)
	}
	return out
}
