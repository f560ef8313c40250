package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

// Result describes a finished game.
type Result struct {
	SessionID      uuid.UUID
	Game           int
	Layout         string
	Won            bool
	ElapsedSeconds int
	Revealed       int
	Flagged        int
	FinishedAt     time.Time
}

// Session is one single-player game table. All engine access goes
// through the session mutex.
type Session struct {
	ID     uuid.UUID
	Layout layout.Layout

	log      *logrus.Entry
	tick     time.Duration
	onFinish func(Result)
	now      func() time.Time

	mu         sync.Mutex
	engine     *board.Engine
	game       int
	finished   bool
	lastActive time.Time
	clock      *clock
	closed     bool
	subs       map[chan board.Snapshot]struct{}
}

func (s *Session) Reveal(row, col int) (board.RevealResult, board.Snapshot) {
	s.mu.Lock()
	res := s.engine.Reveal(row, col)
	snap, finished := s.afterCommand(res.Outcome)
	s.mu.Unlock()

	s.finish(finished)
	return res, snap
}

func (s *Session) ToggleFlag(row, col int) (board.FlagResult, board.Snapshot) {
	s.mu.Lock()
	res := s.engine.ToggleFlag(row, col)
	snap, finished := s.afterCommand(res.Outcome)
	s.mu.Unlock()

	s.finish(finished)
	return res, snap
}

// Reset starts a fresh game from the session's layout.
func (s *Session) Reset() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopClock()
	s.engine.Reset()
	s.game++
	s.finished = s.engine.Game().Frozen()
	s.lastActive = s.now()
	s.log.WithField("game", s.game).Debug("reset")
	return s.engine.Snapshot()
}

func (s *Session) Snapshot() board.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

func (s *Session) InBounds(row, col int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Game().InBounds(row, col)
}

// Game is the number of resets since the session was created.
func (s *Session) Game() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game
}

func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Subscribe returns a channel receiving a snapshot on every clock tick.
// Slow readers only see the latest snapshot.
func (s *Session) Subscribe() (<-chan board.Snapshot, func()) {
	ch := make(chan board.Snapshot, 1)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.subs[ch] = struct{}{}
	}
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Close stops the clock and releases subscribers.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.stopClock()
	for ch := range s.subs {
		delete(s.subs, ch)
		close(ch)
	}
}

// afterCommand runs with the lock held. It returns the snapshot to hand
// back and, when this command ended the game, its result.
func (s *Session) afterCommand(outcome board.Outcome) (board.Snapshot, *Result) {
	g := s.engine.Game()
	if outcome.Changed() {
		s.lastActive = s.now()
	}
	if g.TimingActive() && s.clock == nil && !s.closed {
		game := s.game
		s.clock = startClock(s.tick, func() bool { return s.advance(game) })
	}

	var res *Result
	if g.Frozen() && !s.finished {
		s.finished = true
		s.stopClock()
		res = &Result{
			SessionID:      s.ID,
			Game:           s.game,
			Layout:         s.Layout.Name,
			Won:            g.Won(),
			ElapsedSeconds: g.ElapsedSeconds(),
			Revealed:       g.RevealedCount(),
			Flagged:        g.FlaggedCount(),
			FinishedAt:     s.now(),
		}
	}
	return g.Snapshot(), res
}

func (s *Session) finish(res *Result) {
	if res == nil {
		return
	}
	s.log.WithFields(logrus.Fields{
		"game":    res.Game,
		"won":     res.Won,
		"elapsed": res.ElapsedSeconds,
	}).Info("game finished")
	if s.onFinish != nil {
		s.onFinish(*res)
	}
}

// advance is the clock callback for the given game number.
func (s *Session) advance(game int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.game != game || !s.engine.AdvanceTime() {
		return false
	}
	snap := s.engine.Snapshot()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return true
}

func (s *Session) stopClock() {
	if s.clock != nil {
		s.clock.Stop()
		s.clock = nil
	}
}
