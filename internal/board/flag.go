package board

type FlagResult struct {
	Outcome Outcome `json:"outcome"`
}

// ToggleFlag places or removes a flag. Placing is refused once as many
// flags are down as there are bombs; removing always succeeds.
func (s *GameState) ToggleFlag(row, col int) FlagResult {
	switch {
	case !s.grid.InBounds(row, col):
		s.reject("flag", row, col, "out of bounds")
		return FlagResult{Outcome: None}
	case s.Frozen():
		s.reject("flag", row, col, "game is over")
		return FlagResult{Outcome: None}
	}

	cell := &s.grid.cells[s.grid.index(row, col)]
	if cell.Revealed || cell.Disabled {
		return FlagResult{Outcome: None}
	}

	if cell.Flagged {
		cell.Flagged = false
		s.remainingFlags++
		s.started = true
		return FlagResult{Outcome: Unflagged}
	}

	if s.remainingFlags <= 0 {
		s.reject("flag", row, col, "no flags left")
		return FlagResult{Outcome: None}
	}
	cell.Flagged = true
	s.remainingFlags--
	s.started = true
	return FlagResult{Outcome: Flagged}
}
