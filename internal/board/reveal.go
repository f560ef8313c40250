package board

type RevealResult struct {
	Outcome  Outcome    `json:"outcome"`
	Affected []CellView `json:"affected"`
}

// Reveal opens the cell at row, col. Opening a cell with no adjacent bombs
// opens its whole zero region and the numbered border around it.
func (s *GameState) Reveal(row, col int) RevealResult {
	switch {
	case !s.grid.InBounds(row, col):
		s.reject("reveal", row, col, "out of bounds")
		return RevealResult{Outcome: None}
	case s.Frozen():
		s.reject("reveal", row, col, "game is over")
		return RevealResult{Outcome: None}
	}

	start := s.grid.index(row, col)
	cell := &s.grid.cells[start]
	if cell.Revealed || cell.Flagged || cell.Disabled {
		return RevealResult{Outcome: None}
	}
	s.started = true

	if cell.Bomb {
		/*
		 * Only the bomb that was hit is shown. The rest of the minefield
		 * keeps whatever state it had.
		 */
		cell.Revealed = true
		s.hitBomb = true
		s.detonated = start
		Log.WithField("cell", Coord{row, col}).Debug("bomb hit")
		return RevealResult{Outcome: BombHit, Affected: []CellView{s.view(start)}}
	}

	result := RevealResult{Outcome: Revealed, Affected: s.flood(start)}
	if s.CheckWin() {
		s.won = true
		result.Outcome = Win
		Log.WithField("elapsed", s.elapsed).Debug("board cleared")
	}
	return result
}

// flood reveals start and, through an explicit stack, every cell reachable
// from it across zero-adjacency cells. A cell is pushed at most once since
// it is marked revealed before being pushed.
func (s *GameState) flood(start int) []CellView {
	s.open(start)
	stack := []int{start}
	var affected []CellView

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		affected = append(affected, s.view(i))

		if s.grid.cells[i].Adjacent != 0 {
			continue
		}
		for j := range s.grid.neighbors(i) {
			n := &s.grid.cells[j]
			if n.Revealed || n.Disabled {
				continue
			}
			s.open(j)
			stack = append(stack, j)
		}
	}

	return affected
}

// open marks cell i revealed, handing back its flag if it had one.
func (s *GameState) open(i int) {
	c := &s.grid.cells[i]
	c.Revealed = true
	if c.Flagged {
		c.Flagged = false
		s.remainingFlags++
	}
}
