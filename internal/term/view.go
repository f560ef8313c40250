package term

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

const (
	cellWidth  = 2
	boardTop   = 2
	boardLeft  = 0
	maxCounter = 999
)

var numberColors = [...]tcell.Color{
	1: tcell.ColorBlue,
	2: tcell.ColorGreen,
	3: tcell.ColorRed,
	4: tcell.ColorNavy,
	5: tcell.ColorMaroon,
	6: tcell.ColorTeal,
	7: tcell.ColorWhite,
	8: tcell.ColorGray,
}

var (
	styleDefault   = tcell.StyleDefault
	styleHidden    = tcell.StyleDefault.Background(tcell.ColorSilver).Foreground(tcell.ColorBlack)
	styleOpen      = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleDetonated = tcell.StyleDefault.Background(tcell.ColorRed).Foreground(tcell.ColorBlack)
	styleReward    = tcell.StyleDefault.Background(tcell.ColorGold).Foreground(tcell.ColorBlack)
)

func face(snap board.Snapshot) string {
	switch {
	case snap.HitBomb:
		return "😵"
	case snap.Won:
		return "😎"
	default:
		return "🙂"
	}
}

func counter(n int) string {
	return fmt.Sprintf("%03d", max(0, min(n, maxCounter)))
}

// statusLine is the bar above the board: flags left, face, seconds.
func statusLine(snap board.Snapshot) string {
	return counter(snap.RemainingFlags) + " " + face(snap) + " " + counter(snap.ElapsedSeconds)
}

// cellAt maps a screen position to a board cell.
func cellAt(x, y, size int) (row, col int, ok bool) {
	row = y - boardTop
	if x < boardLeft {
		return 0, 0, false
	}
	col = (x - boardLeft) / cellWidth
	if row < 0 || row >= size || col >= size {
		return 0, 0, false
	}
	return row, col, true
}

// glyph is the text and style of one cell, two columns wide.
func glyph(v board.CellView, snap board.Snapshot, l layout.Layout) (string, tcell.Style) {
	if snap.Won && !v.Disabled {
		if r, ok := l.RewardAt(v.Row, v.Col); ok {
			return r.Kind.Glyph(), styleReward
		}
	}
	switch {
	case v.Disabled:
		return "  ", styleDefault
	case v.Detonated:
		return "💣", styleDetonated
	case v.Flagged:
		return "🚩", styleHidden
	case !v.Revealed:
		return "  ", styleHidden
	case v.Adjacent == 0:
		return "  ", styleOpen
	default:
		return strconv.Itoa(v.Adjacent) + " ", styleOpen.Foreground(numberColors[v.Adjacent]).Bold(true)
	}
}

const helpLine = "click/space reveal  right-click/f flag  hjkl move  r reset  q quit"
