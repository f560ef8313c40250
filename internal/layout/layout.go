// Package layout holds the fixed boards the game is played on and reads
// custom ones from disk.
package layout

import (
	"github.com/vancomm/shieldsweeper/internal/board"
)

type RewardKind string

const (
	RewardKey    RewardKind = "key"
	RewardShield RewardKind = "shield"
)

// Reward is a display-only marker the host draws over a cell once the
// board is won.
type Reward struct {
	Row  int        `json:"row" yaml:"row" toml:"row"`
	Col  int        `json:"col" yaml:"col" toml:"col"`
	Kind RewardKind `json:"kind" yaml:"kind" toml:"kind"`
}

func (r Reward) Coord() board.Coord {
	return board.Coord{Row: r.Row, Col: r.Col}
}

func (k RewardKind) Glyph() string {
	switch k {
	case RewardKey:
		return "🗝️"
	case RewardShield:
		return "🛡️"
	default:
		return "★"
	}
}

type Layout struct {
	Name    string       `json:"name"`
	Config  board.Config `json:"config"`
	Rewards []Reward     `json:"rewards,omitempty"`
}

// Shield is the built-in 14x14 board: a shield outline carved out of the
// grid by disabled cells, with sixteen bombs.
func Shield() Layout {
	return Layout{
		Name: "shield",
		Config: board.Config{
			Size: 14,
			Bombs: []board.Coord{
				{Row: 0, Col: 1},
				{Row: 2, Col: 3},
				{Row: 2, Col: 12},
				{Row: 3, Col: 1},
				{Row: 4, Col: 0},
				{Row: 5, Col: 2},
				{Row: 4, Col: 11},
				{Row: 6, Col: 3},
				{Row: 6, Col: 9},
				{Row: 7, Col: 2},
				{Row: 7, Col: 8},
				{Row: 9, Col: 0},
				{Row: 9, Col: 8},
				{Row: 10, Col: 4},
				{Row: 11, Col: 3},
				{Row: 12, Col: 5},
			},
			Disabled: []board.DisabledGroup{
				{Row: 0, Cols: []int{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13}},
				{Row: 1, Cols: []int{4, 5, 6, 7, 8, 9, 10}},
				{Row: 2, Cols: []int{4, 5, 6, 7, 8, 9, 10}},
				{Row: 3, Cols: []int{4, 5, 6, 7, 8, 9, 10}},
				{Row: 4, Cols: []int{4, 5, 6, 7, 8, 9}},
				{Row: 5, Cols: []int{4, 5, 6, 7, 8, 13}},
				{Row: 6, Cols: []int{4, 5, 6, 7, 12, 13}},
				{Row: 7, Cols: []int{4, 12, 13}},
				{Row: 8, Cols: []int{10, 11, 12, 13}},
				{Row: 9, Cols: []int{9, 10, 11, 12, 13}},
				{Row: 10, Cols: []int{7, 8, 9, 10, 11, 12, 13}},
				{Row: 11, Cols: []int{7, 8, 9, 10, 11, 12, 13}},
				{Row: 12, Cols: []int{7, 8, 9, 10, 11, 12, 13}},
				{Row: 13, Cols: []int{0, 1, 5, 6, 7, 8, 9, 10, 11, 12, 13}},
			},
		},
		Rewards: []Reward{
			{Row: 5, Col: 12, Kind: RewardKey},
			{Row: 8, Col: 4, Kind: RewardShield},
		},
	}
}

// NewEngine builds an engine for l.
func (l Layout) NewEngine() (*board.Engine, error) {
	return board.NewEngine(l.Config)
}

// RewardAt returns the reward drawn over row, col, if any.
func (l Layout) RewardAt(row, col int) (Reward, bool) {
	for _, r := range l.Rewards {
		if r.Row == row && r.Col == col {
			return r, true
		}
	}
	return Reward{}, false
}
