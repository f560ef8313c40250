package board

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Log.SetOutput(io.Discard)
	m.Run()
}

func singleBomb() Config {
	return Config{Size: 3, Bombs: []Coord{{0, 0}}}
}

// randomConfig places bombs and disabled cells at random, keeping the two
// sets apart.
func randomConfig(r *rand.Rand, size int) Config {
	cfg := Config{Size: size}
	for row := range size {
		var cols []int
		for col := range size {
			switch x := r.IntN(10); {
			case x < 2:
				cfg.Bombs = append(cfg.Bombs, Coord{row, col})
			case x < 3:
				cols = append(cols, col)
			}
		}
		if len(cols) > 0 {
			cfg.Disabled = append(cfg.Disabled, DisabledGroup{Row: row, Cols: cols})
		}
	}
	return cfg
}

func mustGame(t *testing.T, cfg Config) *GameState {
	t.Helper()
	game, err := NewGame(cfg)
	require.NoError(t, err)
	return game
}

func revealedSet(s *GameState) map[Coord]bool {
	set := map[Coord]bool{}
	for _, c := range s.grid.cells {
		if c.Revealed {
			set[Coord{c.Row, c.Col}] = true
		}
	}
	return set
}
