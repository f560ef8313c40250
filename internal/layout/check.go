package layout

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"

	"github.com/vancomm/shieldsweeper/internal/board"
)

// Check lists everything questionable about l. Build errors make the layout
// unplayable; duplicates and misplaced rewards are only suspicious.
func Check(l Layout) []error {
	var problems []error

	if _, err := board.NewGame(l.Config); err != nil {
		problems = append(problems, err)
	}

	bombs := mapset.New[board.Coord]()
	for _, c := range l.Config.Bombs {
		if bombs.Has(c) {
			problems = append(problems, fmt.Errorf("bomb %s listed twice", c))
		}
		bombs.Put(c)
	}

	disabled := mapset.New[board.Coord]()
	for _, c := range l.Config.DisabledCoords() {
		if disabled.Has(c) {
			problems = append(problems, fmt.Errorf("disabled cell %s listed twice", c))
		}
		disabled.Put(c)
	}

	size := l.Config.Size
	for _, r := range l.Rewards {
		c := r.Coord()
		switch {
		case c.Row < 0 || c.Row >= size || c.Col < 0 || c.Col >= size:
			problems = append(problems, fmt.Errorf("%s reward %s: %w", r.Kind, c, board.ErrOutOfBounds))
		case disabled.Has(c):
			problems = append(problems, fmt.Errorf("%s reward %s sits on a disabled cell", r.Kind, c))
		case bombs.Has(c):
			problems = append(problems, fmt.Errorf("%s reward %s sits on a bomb", r.Kind, c))
		}
	}

	return problems
}
