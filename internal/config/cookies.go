package config

import (
	"net/http"
	"strings"
	"time"
)

const SessionCookie = "session"

type CookiesConfig struct {
	Domain   string `mapstructure:"domain"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

func (c CookiesConfig) SameSiteMode() http.SameSite {
	switch strings.ToUpper(c.SameSite) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func (c CookiesConfig) SetSession(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    token,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSiteMode(),
	})
}

func (c CookiesConfig) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Path:     "/",
		Value:    "delete",
		MaxAge:   -1,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSiteMode(),
	})
}

// SessionToken returns the bearer token from the Authorization header,
// falling back to the session cookie and then the token query parameter.
func SessionToken(r *http.Request) (string, bool) {
	if auth := r.Header.Get("Authorization"); auth != "" {
		token, ok := strings.CutPrefix(auth, "Bearer ")
		return token, ok && token != ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	token := r.URL.Query().Get("token")
	return token, token != ""
}
