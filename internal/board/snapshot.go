package board

import "strings"

type Snapshot struct {
	Size           int        `json:"size"`
	Cells          []CellView `json:"cells"`
	TotalBombs     int        `json:"total_bombs"`
	RemainingFlags int        `json:"remaining_flags"`
	HitBomb        bool       `json:"hit_bomb"`
	Won            bool       `json:"won"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	TimingActive   bool       `json:"timing_active"`
}

func (s *GameState) Snapshot() Snapshot {
	cells := make([]CellView, len(s.grid.cells))
	for i := range s.grid.cells {
		cells[i] = s.view(i)
	}
	return Snapshot{
		Size:           s.grid.size,
		Cells:          cells,
		TotalBombs:     s.totalBombs,
		RemainingFlags: s.remainingFlags,
		HitBomb:        s.hitBomb,
		Won:            s.won,
		ElapsedSeconds: s.elapsed,
		TimingActive:   s.TimingActive(),
	}
}

// At returns the view of row, col. It panics on coordinates outside the
// board, like a slice index would.
func (s Snapshot) At(row, col int) CellView {
	return s.Cells[row*s.Size+col]
}

// Rows iterates the snapshot one board row at a time.
func (s Snapshot) Rows() [][]CellView {
	rows := make([][]CellView, s.Size)
	for r := range s.Size {
		rows[r] = s.Cells[r*s.Size : (r+1)*s.Size]
	}
	return rows
}

func (s Snapshot) String() string {
	var b strings.Builder
	for _, row := range s.Rows() {
		for x, cell := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cell.String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
