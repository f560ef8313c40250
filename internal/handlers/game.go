package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/shieldsweeper/internal/config"
	"github.com/vancomm/shieldsweeper/internal/session"
)

var (
	ErrBadSessionID = errors.New("invalid session id")
	ErrOutOfBounds  = errors.New("cell is outside the board")
)

type GameHandler struct {
	log      *logrus.Logger
	registry *session.Registry
	tokens   *session.Tokens
	cookies  config.CookiesConfig
	upgrader *websocket.Upgrader
}

func NewGameHandler(
	log *logrus.Logger,
	registry *session.Registry,
	tokens *session.Tokens,
	cookies config.CookiesConfig,
	upgrader *websocket.Upgrader,
) *GameHandler {
	return &GameHandler{
		log:      log,
		registry: registry,
		tokens:   tokens,
		cookies:  cookies,
		upgrader: upgrader,
	}
}

// lookup resolves the {id} path value, writing 404 when it names no live
// session.
func (g GameHandler) lookup(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		sendError(w, g.log, http.StatusNotFound, ErrBadSessionID)
		return nil, false
	}
	s, err := g.registry.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendError(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to look up session")
		return nil, false
	}
	return s, true
}

func (g GameHandler) point(w http.ResponseWriter, r *http.Request, s *session.Session) (PointDTO, bool) {
	pt, err := ParsePoint(r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return pt, false
	}
	if !s.InBounds(pt.Row, pt.Col) {
		sendError(w, g.log, http.StatusBadRequest, ErrOutOfBounds)
		return pt, false
	}
	return pt, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	s, err := g.registry.Create()
	if errors.Is(err, session.ErrTooManySessions) {
		sendError(w, g.log, http.StatusServiceUnavailable, err)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create session")
		return
	}

	token, expires, err := g.tokens.Issue(s.ID)
	if err != nil {
		g.registry.Remove(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to issue session token")
		return
	}
	g.cookies.SetSession(w, token, expires)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, SessionDTO{
		SessionID: s.ID.String(),
		Token:     token,
		ExpiresAt: expires.UnixMilli(),
		Layout:    s.Layout.Name,
		Game:      s.Game(),
		State:     s.Snapshot(),
	})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.log, SessionDTO{
		SessionID: s.ID.String(),
		Layout:    s.Layout.Name,
		Game:      s.Game(),
		State:     s.Snapshot(),
	})
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	pt, ok := g.point(w, r, s)
	if !ok {
		return
	}
	res, snap := s.Reveal(pt.Row, pt.Col)
	sendJSONOrLog(w, g.log, RevealDTO{RevealResult: res, State: snap})
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	pt, ok := g.point(w, r, s)
	if !ok {
		return
	}
	res, snap := s.ToggleFlag(pt.Row, pt.Col)
	sendJSONOrLog(w, g.log, FlagDTO{FlagResult: res, State: snap})
}

func (g GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	snap := s.Reset()
	sendJSONOrLog(w, g.log, SessionDTO{
		SessionID: s.ID.String(),
		Layout:    s.Layout.Name,
		Game:      s.Game(),
		State:     snap,
	})
}

// Close ends the session and clears the session cookie.
func (g GameHandler) Close(w http.ResponseWriter, r *http.Request) {
	s, ok := g.lookup(w, r)
	if !ok {
		return
	}
	g.registry.Remove(s.ID)
	g.cookies.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func (g GameHandler) Layout(w http.ResponseWriter, r *http.Request) {
	sendJSONOrLog(w, g.log, NewLayoutDTO(g.registry.Layout()))
}
