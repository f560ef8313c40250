package board

import "fmt"

type Coord struct {
	Row int `json:"row" yaml:"row" toml:"row"`
	Col int `json:"col" yaml:"col" toml:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// Cell is one grid position. Bomb, Disabled and Adjacent are fixed when the
// board is built; Revealed only ever goes from false to true.
type Cell struct {
	Row, Col int
	Bomb     bool
	Revealed bool
	Flagged  bool
	Disabled bool
	Adjacent int
}

// CellView is the read-only picture of a cell handed to hosts. Bomb and
// Adjacent are only filled in once the cell is revealed.
type CellView struct {
	Row       int  `json:"row"`
	Col       int  `json:"col"`
	Revealed  bool `json:"revealed"`
	Flagged   bool `json:"flagged"`
	Disabled  bool `json:"disabled"`
	Bomb      bool `json:"bomb,omitempty"`
	Adjacent  int  `json:"adjacent,omitempty"`
	Detonated bool `json:"detonated,omitempty"`
}

func (c Cell) view() CellView {
	v := CellView{
		Row:      c.Row,
		Col:      c.Col,
		Revealed: c.Revealed,
		Flagged:  c.Flagged,
		Disabled: c.Disabled,
	}
	if c.Revealed {
		v.Bomb = c.Bomb
		v.Adjacent = c.Adjacent
	}
	return v
}

func (v CellView) String() string {
	switch {
	case v.Disabled:
		return "#"
	case v.Flagged:
		return "F"
	case !v.Revealed:
		return "-"
	case v.Detonated:
		return "X"
	case v.Bomb:
		return "*"
	case v.Adjacent == 0:
		return "."
	default:
		return fmt.Sprint(v.Adjacent)
	}
}
