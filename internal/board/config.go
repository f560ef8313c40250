package board

import "slices"

// DisabledGroup marks Cols of Row as permanently out of play.
type DisabledGroup struct {
	Row  int   `json:"row" yaml:"row" toml:"row"`
	Cols []int `json:"cols" yaml:"cols" toml:"cols"`
}

// Config describes a fixed board: its dimension, bomb positions and the
// cells excluded from play.
type Config struct {
	Size     int             `json:"size" yaml:"size" toml:"size"`
	Bombs    []Coord         `json:"bombs" yaml:"bombs" toml:"bombs"`
	Disabled []DisabledGroup `json:"disabled" yaml:"disabled" toml:"disabled"`
}

// Clone returns a copy of c that shares no slices with it.
func (c Config) Clone() Config {
	clone := Config{Size: c.Size, Bombs: slices.Clone(c.Bombs)}
	if c.Disabled != nil {
		clone.Disabled = make([]DisabledGroup, len(c.Disabled))
		for i, group := range c.Disabled {
			clone.Disabled[i] = DisabledGroup{Row: group.Row, Cols: slices.Clone(group.Cols)}
		}
	}
	return clone
}

// DisabledCoords flattens the disabled groups in declaration order.
func (c Config) DisabledCoords() []Coord {
	var coords []Coord
	for _, group := range c.Disabled {
		for _, col := range group.Cols {
			coords = append(coords, Coord{group.Row, col})
		}
	}
	return coords
}

func (c Config) build() (Grid, error) {
	if c.Size < 1 {
		return Grid{}, &ConfigError{Field: "size", Err: ErrInvalidSize}
	}
	grid := newGrid(c.Size)

	for _, coord := range c.DisabledCoords() {
		if !grid.InBounds(coord.Row, coord.Col) {
			return Grid{}, &ConfigError{Field: "disabled", Coord: coord, Err: ErrOutOfBounds}
		}
		grid.cells[grid.index(coord.Row, coord.Col)].Disabled = true
	}

	for _, coord := range c.Bombs {
		if !grid.InBounds(coord.Row, coord.Col) {
			return Grid{}, &ConfigError{Field: "bomb", Coord: coord, Err: ErrOutOfBounds}
		}
		cell := &grid.cells[grid.index(coord.Row, coord.Col)]
		if cell.Disabled {
			return Grid{}, &ConfigError{Field: "bomb", Coord: coord, Err: ErrBombOnDisabled}
		}
		cell.Bomb = true
	}

	grid.countAdjacent()
	return grid, nil
}
