package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeTokens map[string]uuid.UUID

func (f fakeTokens) Verify(token string, id uuid.UUID) error {
	if owner, ok := f[token]; ok && owner == id {
		return nil
	}
	return errors.New("bad token")
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestWrapOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(h http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				h.ServeHTTP(w, r)
			})
		}
	}
	h := Wrap(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("outer"), nil, mark("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

func TestRequireSession(t *testing.T) {
	id := uuid.New()
	tokens := fakeTokens{"good": id, "other": uuid.New()}

	mux := http.NewServeMux()
	mux.Handle("POST /game/{id}/reveal", RequireSession(quietLogger(), tokens)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := SessionID(r.Context())
			assert.True(t, ok)
			assert.Equal(t, id, got)
			w.WriteHeader(http.StatusNoContent)
		}),
	))

	tests := []struct {
		name   string
		path   string
		header string
		cookie string
		status int
	}{
		{"bearer", "/game/" + id.String() + "/reveal", "Bearer good", "", http.StatusNoContent},
		{"cookie", "/game/" + id.String() + "/reveal", "", "good", http.StatusNoContent},
		{"missing", "/game/" + id.String() + "/reveal", "", "", http.StatusUnauthorized},
		{"foreign", "/game/" + id.String() + "/reveal", "Bearer other", "", http.StatusUnauthorized},
		{"bad id", "/game/nope/reveal", "Bearer good", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestLoggingRecordsStatus(t *testing.T) {
	h := Logging(quietLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hijackable := w.(http.Hijacker)
		assert.True(t, hijackable)
		w.WriteHeader(http.StatusTeapot)
	}))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestCorsAllowsCredentials(t *testing.T) {
	h := Cors()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "http://example.com")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "http://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCorsOrigins(t *testing.T) {
	h := Cors("http://board.test")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	preflight := func(origin string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodOptions, "/v1/game/x", nil)
		r.Header.Set("Origin", origin)
		r.Header.Set("Access-Control-Request-Method", http.MethodDelete)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w
	}

	w := preflight("http://board.test")
	assert.Equal(t, "http://board.test", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)

	w = preflight("http://elsewhere.test")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
