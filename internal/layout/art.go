package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vancomm/shieldsweeper/internal/board"
)

const (
	artOpen     = '.'
	artBomb     = '*'
	artDisabled = '#'
)

var ErrNotSquare = errors.New("layout art must be square")

// ParseArt reads a board drawn one string per row: '.' is an open cell,
// '*' a bomb and '#' a disabled cell. Spaces are ignored.
func ParseArt(lines []string) (board.Config, error) {
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.ReplaceAll(line, " ", "")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}

	cfg := board.Config{Size: len(rows)}
	for r, line := range rows {
		if len(line) != len(rows) {
			return board.Config{}, fmt.Errorf(
				"row %d has %d cells, want %d: %w", r, len(line), len(rows), ErrNotSquare,
			)
		}
		var disabled []int
		for c, ch := range line {
			switch ch {
			case artOpen:
			case artBomb:
				cfg.Bombs = append(cfg.Bombs, board.Coord{Row: r, Col: c})
			case artDisabled:
				disabled = append(disabled, c)
			default:
				return board.Config{}, fmt.Errorf("row %d col %d: unknown cell %q", r, c, ch)
			}
		}
		if len(disabled) > 0 {
			cfg.Disabled = append(cfg.Disabled, board.DisabledGroup{Row: r, Cols: disabled})
		}
	}
	return cfg, nil
}

// Art draws the layout in the form [ParseArt] reads. Cells outside the
// board size are dropped.
func (l Layout) Art() []string {
	size := l.Config.Size
	grid := make([][]byte, size)
	for r := range grid {
		grid[r] = []byte(strings.Repeat(string(artOpen), size))
	}
	inside := func(c board.Coord) bool {
		return 0 <= c.Row && c.Row < size && 0 <= c.Col && c.Col < size
	}
	for _, c := range l.Config.DisabledCoords() {
		if inside(c) {
			grid[c.Row][c.Col] = artDisabled
		}
	}
	for _, c := range l.Config.Bombs {
		if inside(c) {
			grid[c.Row][c.Col] = artBomb
		}
	}
	lines := make([]string, size)
	for r, row := range grid {
		lines[r] = string(row)
	}
	return lines
}
