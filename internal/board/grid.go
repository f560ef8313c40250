package board

import "iter"

// Grid is a square, row-major collection of cells. It is owned by exactly
// one [GameState] and never shared.
type Grid struct {
	size  int
	cells []Cell
}

func newGrid(size int) Grid {
	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i].Row = i / size
		cells[i].Col = i % size
	}
	return Grid{size: size, cells: cells}
}

func (g *Grid) Size() int {
	return g.size
}

func (g *Grid) InBounds(row, col int) bool {
	return 0 <= row && row < g.size && 0 <= col && col < g.size
}

func (g *Grid) index(row, col int) int {
	return row*g.size + col
}

// neighbors yields the indices of the Moore neighbourhood of cell i,
// clipped at the grid edges.
func (g *Grid) neighbors(i int) iter.Seq[int] {
	return func(yield func(int) bool) {
		row, col := i/g.size, i%g.size
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				r, c := row+dr, col+dc
				if !g.InBounds(r, c) {
					continue
				}
				if !yield(g.index(r, c)) {
					return
				}
			}
		}
	}
}

// countAdjacent must run after every bomb is placed.
func (g *Grid) countAdjacent() {
	for i := range g.cells {
		n := 0
		for j := range g.neighbors(i) {
			if g.cells[j].Bomb {
				n++
			}
		}
		g.cells[i].Adjacent = n
	}
}

func (g *Grid) countBombs() (n int) {
	for _, c := range g.cells {
		if c.Bomb {
			n++
		}
	}
	return
}
