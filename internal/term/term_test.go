package term

import (
	"io"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

type recordedSounds struct {
	cues []string
}

func (r *recordedSounds) Tick()  { r.cues = append(r.cues, "tick") }
func (r *recordedSounds) Lose()  { r.cues = append(r.cues, "lose") }
func (r *recordedSounds) Win()   { r.cues = append(r.cues, "win") }
func (r *recordedSounds) Close() {}

// corner is a 3x3 board with a single bomb at (0, 0) and a key reward at
// (2, 2).
func corner() layout.Layout {
	return layout.Layout{
		Name:    "corner",
		Config:  board.Config{Size: 3, Bombs: []board.Coord{{Row: 0, Col: 0}}},
		Rewards: []layout.Reward{{Row: 2, Col: 2, Kind: layout.RewardKey}},
	}
}

func newTestUI(t *testing.T) (*UI, *recordedSounds) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	log := logrus.New()
	log.SetOutput(io.Discard)

	sounds := &recordedSounds{}
	u, err := New(log, screen, corner(), sounds)
	require.NoError(t, err)
	return u, sounds
}

func click(u *UI, x, y int, buttons tcell.ButtonMask, mod tcell.ModMask) {
	u.handle(tcell.NewEventMouse(x, y, buttons, mod))
	u.handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func key(u *UI, r rune) bool {
	return u.handle(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
}

func TestStatusLine(t *testing.T) {
	snap := board.Snapshot{RemainingFlags: 16, ElapsedSeconds: 7}
	assert.Equal(t, "016 🙂 007", statusLine(snap))

	snap.HitBomb = true
	snap.ElapsedSeconds = 1234
	assert.Equal(t, "016 😵 999", statusLine(snap))

	snap = board.Snapshot{Won: true}
	assert.Equal(t, "000 😎 000", statusLine(snap))
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y     int
		row, col int
		ok       bool
	}{
		{0, boardTop, 0, 0, true},
		{1, boardTop, 0, 0, true},
		{2, boardTop, 0, 1, true},
		{5, boardTop + 2, 2, 2, true},
		{6, boardTop, 0, 0, false},
		{0, boardTop - 1, 0, 0, false},
		{0, boardTop + 3, 0, 0, false},
	}
	for _, tt := range tests {
		row, col, ok := cellAt(tt.x, tt.y, 3)
		assert.Equal(t, tt.ok, ok, "(%d, %d)", tt.x, tt.y)
		if tt.ok {
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		}
	}
}

func TestGlyph(t *testing.T) {
	l := corner()
	snap := board.Snapshot{}

	text, _ := glyph(board.CellView{Revealed: true, Adjacent: 3}, snap, l)
	assert.Equal(t, "3 ", text)

	text, style := glyph(board.CellView{Revealed: true, Bomb: true, Detonated: true}, snap, l)
	assert.Equal(t, "💣", text)
	assert.Equal(t, styleDetonated, style)

	text, _ = glyph(board.CellView{Flagged: true}, snap, l)
	assert.Equal(t, "🚩", text)

	reward := board.CellView{Row: 2, Col: 2, Revealed: true}
	text, _ = glyph(reward, snap, l)
	assert.Equal(t, "  ", text)

	snap.Won = true
	text, style = glyph(reward, snap, l)
	assert.Equal(t, layout.RewardKey.Glyph(), text)
	assert.Equal(t, styleReward, style)
}

func TestMouseRevealWins(t *testing.T) {
	u, sounds := newTestUI(t)

	click(u, 2*cellWidth, boardTop+2, tcell.Button1, tcell.ModNone)

	assert.True(t, u.engine.Game().Won())
	assert.Equal(t, []string{"win"}, sounds.cues)
	assert.Equal(t, board.Coord{Row: 2, Col: 2}, u.cursor)
	u.draw()
}

func TestMouseFlagAndLose(t *testing.T) {
	u, sounds := newTestUI(t)

	click(u, 0, boardTop, tcell.Button2, tcell.ModNone)
	cell, _ := u.engine.Game().Cell(0, 0)
	assert.True(t, cell.Flagged)

	click(u, 0, boardTop, tcell.Button1, tcell.ModShift)
	cell, _ = u.engine.Game().Cell(0, 0)
	assert.False(t, cell.Flagged)

	click(u, 0, boardTop, tcell.Button1, tcell.ModNone)
	assert.True(t, u.engine.Game().HitBomb())
	assert.Equal(t, []string{"tick", "tick", "lose"}, sounds.cues)

	click(u, 2, boardTop, tcell.Button1, tcell.ModNone)
	assert.Len(t, sounds.cues, 3)
	u.draw()
}

func TestMouseIgnoresDragAndStatusBar(t *testing.T) {
	u, sounds := newTestUI(t)

	u.handle(tcell.NewEventMouse(2, boardTop+1, tcell.Button1, tcell.ModNone))
	u.handle(tcell.NewEventMouse(4, boardTop+1, tcell.Button1, tcell.ModNone))
	assert.Equal(t, 1, u.engine.Game().RevealedCount())

	u.handle(tcell.NewEventMouse(2, boardTop+1, tcell.ButtonNone, tcell.ModNone))
	click(u, 0, 0, tcell.Button1, tcell.ModNone)
	assert.Equal(t, []string{"tick"}, sounds.cues)
}

func TestKeyboard(t *testing.T) {
	u, sounds := newTestUI(t)
	assert.Equal(t, board.Coord{Row: 1, Col: 1}, u.cursor)

	key(u, 'k')
	key(u, 'h')
	key(u, 'h')
	assert.Equal(t, board.Coord{Row: 0, Col: 0}, u.cursor)

	key(u, 'f')
	cell, _ := u.engine.Game().Cell(0, 0)
	assert.True(t, cell.Flagged)

	u.handle(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	u.handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	key(u, ' ')
	assert.Equal(t, 1, u.engine.Game().RevealedCount())

	key(u, 'r')
	assert.Equal(t, 0, u.engine.Game().RevealedCount())
	assert.Equal(t, 1, u.engine.Game().RemainingFlags())
	assert.Equal(t, []string{"tick", "tick"}, sounds.cues)

	assert.True(t, key(u, 'x'))
	assert.False(t, key(u, 'q'))
	assert.False(t, u.handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestSilentSounds(t *testing.T) {
	s, err := NewSounds(false)
	require.NoError(t, err)
	assert.Equal(t, silent{}, s)
	s.Tick()
	s.Close()
}

func TestMelody(t *testing.T) {
	s, err := melody(tone{440, 10_000_000}, tone{880, 10_000_000})
	require.NoError(t, err)

	buf := make([][2]float64, 2*sampleRate.N(10_000_000))
	n, ok := s.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n)
}
