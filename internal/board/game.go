package board

import "github.com/sirupsen/logrus"

var Log = logrus.New()

// GameState is one game on one board. It is created by [NewGame] and
// thrown away on reset, never patched back to its initial state.
type GameState struct {
	grid           Grid
	totalBombs     int
	remainingFlags int
	hitBomb        bool
	won            bool
	started        bool
	elapsed        int
	detonated      int /* index of the bomb that was hit, -1 otherwise */
}

func NewGame(cfg Config) (*GameState, error) {
	grid, err := cfg.build()
	if err != nil {
		return nil, err
	}
	bombs := grid.countBombs()
	s := &GameState{
		grid:           grid,
		totalBombs:     bombs,
		remainingFlags: bombs,
		detonated:      -1,
	}

	/* A board with nothing left to open is won before the first move. */
	s.won = s.CheckWin()

	return s, nil
}

func (s *GameState) Size() int {
	return s.grid.Size()
}

func (s *GameState) InBounds(row, col int) bool {
	return s.grid.InBounds(row, col)
}

// Cell returns a copy of the cell at row, col.
func (s *GameState) Cell(row, col int) (Cell, bool) {
	if !s.grid.InBounds(row, col) {
		return Cell{}, false
	}
	return s.grid.cells[s.grid.index(row, col)], true
}

func (s *GameState) TotalBombs() int     { return s.totalBombs }
func (s *GameState) RemainingFlags() int { return s.remainingFlags }
func (s *GameState) HitBomb() bool       { return s.hitBomb }
func (s *GameState) Won() bool           { return s.won }
func (s *GameState) ElapsedSeconds() int { return s.elapsed }

// Detonated returns the bomb that ended the game, if any.
func (s *GameState) Detonated() (Coord, bool) {
	if s.detonated < 0 {
		return Coord{}, false
	}
	c := s.grid.cells[s.detonated]
	return Coord{c.Row, c.Col}, true
}

// Frozen reports whether the game reached WIN or LOSS.
func (s *GameState) Frozen() bool {
	return s.hitBomb || s.won
}

// CheckWin is true when every cell is a bomb, revealed or disabled.
func (s *GameState) CheckWin() bool {
	for _, c := range s.grid.cells {
		if !(c.Bomb || c.Revealed || c.Disabled) {
			return false
		}
	}
	return true
}

// TimingActive reports whether the host should keep calling
// [GameState.AdvanceTime]: a command was accepted and the game is not over.
func (s *GameState) TimingActive() bool {
	return s.started && !s.Frozen()
}

// AdvanceTime adds one second to the elapsed counter while timing is
// active and reports whether it did.
func (s *GameState) AdvanceTime() bool {
	if !s.TimingActive() {
		return false
	}
	s.elapsed++
	return true
}

// FlaggedCount returns the number of flags currently on the board.
func (s *GameState) FlaggedCount() (n int) {
	for _, c := range s.grid.cells {
		if c.Flagged {
			n++
		}
	}
	return
}

// RevealedCount returns the number of revealed cells, bombs included.
func (s *GameState) RevealedCount() (n int) {
	for _, c := range s.grid.cells {
		if c.Revealed {
			n++
		}
	}
	return
}

func (s *GameState) view(i int) CellView {
	v := s.grid.cells[i].view()
	v.Detonated = i == s.detonated
	return v
}

func (s *GameState) reject(cmd string, row, col int, reason string) {
	Log.WithFields(logrus.Fields{
		"command": cmd,
		"row":     row,
		"col":     col,
	}).Debug("ignored command: ", reason)
}
