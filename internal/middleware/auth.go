package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/shieldsweeper/internal/config"
)

type CtxKey int

const (
	CtxSessionID CtxKey = iota
)

type TokenVerifier interface {
	Verify(token string, id uuid.UUID) error
}

// RequireSession rejects requests whose bearer token or session cookie does
// not belong to the session named by the {id} path value.
func RequireSession(log *logrus.Logger, tokens TokenVerifier) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := uuid.Parse(r.PathValue("id"))
			if err != nil {
				deny(w, http.StatusNotFound, "invalid session id")
				return
			}
			token, ok := config.SessionToken(r)
			if !ok {
				deny(w, http.StatusUnauthorized, "missing session token")
				return
			}
			if err := tokens.Verify(token, id); err != nil {
				log.WithError(err).WithField("session_id", id.String()).Debug("rejected session token")
				deny(w, http.StatusUnauthorized, "invalid session token")
				return
			}
			ctx := context.WithValue(r.Context(), CtxSessionID, id)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func SessionID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(CtxSessionID).(uuid.UUID)
	return id, ok
}

func deny(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
