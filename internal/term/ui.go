// Package term is the terminal host: it draws the board with tcell and
// drives a board.Engine from mouse and keyboard input.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

type UI struct {
	log    *logrus.Logger
	screen tcell.Screen
	layout layout.Layout
	engine *board.Engine
	sounds Sounds

	cursor  board.Coord
	buttons tcell.ButtonMask
}

func New(log *logrus.Logger, screen tcell.Screen, l layout.Layout, sounds Sounds) (*UI, error) {
	engine, err := l.NewEngine()
	if err != nil {
		return nil, err
	}
	if sounds == nil {
		sounds = silent{}
	}
	size := l.Config.Size
	return &UI{
		log:    log,
		screen: screen,
		layout: l,
		engine: engine,
		sounds: sounds,
		cursor: board.Coord{Row: size / 2, Col: size / 2},
	}, nil
}

// Run draws the game and handles input until the player quits or ctx is
// done. The screen must already be initialised.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.screen.HideCursor()
	u.draw()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if u.engine.AdvanceTime() {
				u.draw()
			}
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !u.handle(ev) {
				return nil
			}
			u.draw()
		}
	}
}

// handle applies one event and reports whether to keep running.
func (u *UI) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		u.screen.Sync()
	}
	return true
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		u.move(-1, 0)
	case tcell.KeyDown:
		u.move(1, 0)
	case tcell.KeyLeft:
		u.move(0, -1)
	case tcell.KeyRight:
		u.move(0, 1)
	case tcell.KeyEnter:
		u.reveal(u.cursor.Row, u.cursor.Col)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'k':
			u.move(-1, 0)
		case 'j':
			u.move(1, 0)
		case 'h':
			u.move(0, -1)
		case 'l':
			u.move(0, 1)
		case ' ':
			u.reveal(u.cursor.Row, u.cursor.Col)
		case 'f':
			u.flag(u.cursor.Row, u.cursor.Col)
		case 'r':
			u.reset()
		}
	}
	return true
}

// handleMouse acts on button presses only, not on drags or releases.
func (u *UI) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons() & (tcell.Button1 | tcell.Button2)
	pressed := buttons &^ u.buttons
	u.buttons = buttons
	if pressed == 0 {
		return
	}

	x, y := ev.Position()
	row, col, ok := cellAt(x, y, u.engine.Game().Size())
	if !ok {
		return
	}
	u.cursor = board.Coord{Row: row, Col: col}

	if pressed&tcell.Button2 != 0 || ev.Modifiers()&tcell.ModShift != 0 {
		u.flag(row, col)
		return
	}
	u.reveal(row, col)
}

func (u *UI) move(dr, dc int) {
	size := u.engine.Game().Size()
	u.cursor.Row = min(max(u.cursor.Row+dr, 0), size-1)
	u.cursor.Col = min(max(u.cursor.Col+dc, 0), size-1)
}

func (u *UI) reveal(row, col int) {
	u.cue(u.engine.Reveal(row, col).Outcome)
}

func (u *UI) flag(row, col int) {
	u.cue(u.engine.ToggleFlag(row, col).Outcome)
}

func (u *UI) reset() {
	u.engine.Reset()
	u.log.Debug("reset")
}

func (u *UI) cue(outcome board.Outcome) {
	switch outcome {
	case board.None:
	case board.BombHit:
		u.log.Info("bomb hit")
		u.sounds.Lose()
	case board.Win:
		u.log.WithField("elapsed", u.engine.Game().ElapsedSeconds()).Info("board cleared")
		u.sounds.Win()
	default:
		u.sounds.Tick()
	}
}

func (u *UI) draw() {
	u.screen.Clear()
	snap := u.engine.Snapshot()

	u.putString(boardLeft, 0, statusLine(snap), styleDefault)

	for _, v := range snap.Cells {
		text, style := glyph(v, snap, u.layout)
		if v.Row == u.cursor.Row && v.Col == u.cursor.Col {
			style = style.Reverse(true)
		}
		u.putString(boardLeft+v.Col*cellWidth, boardTop+v.Row, text, style)
	}

	u.putString(boardLeft, boardTop+snap.Size+1, helpLine, styleDefault.Dim(true))
	u.screen.Show()
}

// putString writes s from x, y. Emoji take two columns.
func (u *UI) putString(x, y int, s string, style tcell.Style) {
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		var comb []rune
		for i+1 < len(runes) && runewidth.RuneWidth(runes[i+1]) == 0 {
			comb = append(comb, runes[i+1])
			i++
		}
		u.screen.SetContent(x, y, r, comb, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}
