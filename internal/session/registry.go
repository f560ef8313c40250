package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/shieldsweeper/internal/board"
	"github.com/vancomm/shieldsweeper/internal/layout"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

type Options struct {
	TTL           time.Duration
	Tick          time.Duration
	SweepInterval time.Duration
	MaxSessions   int // 0 means unlimited
	OnFinish      func(Result)
}

type Registry struct {
	log    *logrus.Logger
	layout layout.Layout
	opts   Options
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(log *logrus.Logger, l layout.Layout, opts Options) *Registry {
	if opts.Tick <= 0 {
		opts.Tick = time.Second
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = time.Minute
	}
	return &Registry{
		log:      log,
		layout:   l,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
}

func (r *Registry) Layout() layout.Layout {
	return r.layout
}

func (r *Registry) Create() (*Session, error) {
	engine, err := r.layout.NewEngine()
	if err != nil {
		return nil, fmt.Errorf("unable to build layout %q: %w", r.layout.Name, err)
	}

	id := uuid.New()
	s := &Session{
		ID:         id,
		Layout:     r.layout,
		log:        r.log.WithField("session_id", id.String()),
		tick:       r.opts.Tick,
		onFinish:   r.opts.OnFinish,
		now:        r.now,
		engine:     engine,
		finished:   engine.Game().Frozen(),
		lastActive: r.now(),
		subs:       make(map[chan board.Snapshot]struct{}),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.opts.MaxSessions > 0 && len(r.sessions) >= r.opts.MaxSessions {
		return nil, ErrTooManySessions
	}
	r.sessions[id] = s
	s.log.Debug("session created")
	return s, nil
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (r *Registry) Remove(id uuid.UUID) bool {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (r *Registry) Sweep() int {
	if r.opts.TTL <= 0 {
		return 0
	}
	deadline := r.now().Add(-r.opts.TTL)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.LastActive().Before(deadline) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Close()
		s.log.Debug("session expired")
	}
	return len(expired)
}

// Run sweeps expired sessions until ctx is done, then closes every session.
func (r *Registry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.log.WithField("count", n).Info("expired sessions removed")
			}
		}
	}
}

func (r *Registry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
