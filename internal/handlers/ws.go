package handlers

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/session"
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0,
	"r": 2,
	"f": 2,
	"n": 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadNargs       = errors.New("invalid number of arguments")
	errSessionClosed  = errors.New("session closed")
)

type WSMessage struct {
	Type     string          `json:"type"`
	Outcomes []board.Outcome `json:"outcomes,omitempty"`
	Error    string          `json:"error,omitempty"`
	Game     int             `json:"game"`
	State    board.Snapshot  `json:"state"`
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("col must be an int")
		return
	}
	return
}

func executeCommand(s *session.Session, c string) (board.Outcome, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return board.None, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return board.None, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return board.None, ErrBadNargs
	}
	switch parts[0] {
	case "r", "f":
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return board.None, err
		}
		if !s.InBounds(row, col) {
			return board.None, ErrOutOfBounds
		}
		if parts[0] == "r" {
			res, _ := s.Reveal(row, col)
			return res.Outcome, nil
		}
		res, _ := s.ToggleFlag(row, col)
		return res.Outcome, nil
	case "n":
		s.Reset()
	}
	return board.None, nil
}

// executeBatch runs newline separated commands, stopping at the first
// invalid one. An empty batch is a plain "g".
func executeBatch(s *session.Session, text string) WSMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		text = "g"
	}
	msg := WSMessage{Type: "batch", Outcomes: []board.Outcome{}}
	for _, c := range iterBySep(text, "\n") {
		outcome, err := executeCommand(s, c)
		if err != nil {
			msg.Error = err.Error()
			break
		}
		msg.Outcomes = append(msg.Outcomes, outcome)
	}
	msg.Game = s.Game()
	msg.State = s.Snapshot()
	return msg
}

func (g GameHandler) Connect(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	log := g.log.WithField("session_id", s.ID.String())
	log.Debug("websocket connected")

	ticks, unsubscribe := s.Subscribe()
	defer unsubscribe()

	var writeMu sync.Mutex
	write := func(msg WSMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	ctx, stop := context.WithCancel(r.Context())
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		defer stop()
		for {
			mt, message, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil || websocket.IsCloseError(err,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return fmt.Errorf("read: %w", err)
			}
			if mt != websocket.TextMessage {
				return nil
			}
			if err := write(executeBatch(s, string(message))); err != nil {
				return fmt.Errorf("write: %w", err)
			}
		}
	})

	eg.Go(func() error {
		defer conn.Close()
		for {
			select {
			case <-ctx.Done():
				return nil
			case snap, ok := <-ticks:
				if !ok {
					return errSessionClosed
				}
				if err := write(WSMessage{Type: "tick", Game: s.Game(), State: snap}); err != nil {
					return fmt.Errorf("write: %w", err)
				}
			}
		}
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, errSessionClosed) {
		log.WithError(err).Warn("websocket closed")
		return
	}
	log.WithFields(logrus.Fields{"game": s.Game()}).Debug("websocket closed")
}
