package config

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Mode)
	assert.True(t, cfg.Development())
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.Equal(t, time.Second, cfg.Session.Tick)
	assert.True(t, cfg.Audio)
	assert.False(t, cfg.Postgres.Enabled())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeFile(t, "shieldsweeper.toml", `
mode = "production"
addr = ":9000"

[session]
secret = "hunter2"
ttl = "5m"

[postgres]
host = "db"
user = "sweeper"
password = "p@ss"
db_name = "records"
`)
	t.Setenv("SHIELDSWEEPER_SESSION_TICK", "250ms")
	t.Setenv("SHIELDSWEEPER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Production())
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 250*time.Millisecond, cfg.Session.Tick)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Postgres.Enabled())

	conn, err := cfg.Postgres.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://sweeper:p%40ss@db:5432/records?sslmode=disable", conn)
}

func TestLoadPasswordFileFromEnv(t *testing.T) {
	secret := writeFile(t, "pg_password", "s3cret\n")
	t.Setenv("SHIELDSWEEPER_POSTGRES_HOST", "db")
	t.Setenv("SHIELDSWEEPER_POSTGRES_USER", "sweeper")
	t.Setenv("SHIELDSWEEPER_POSTGRES_DB_NAME", "records")
	t.Setenv("SHIELDSWEEPER_POSTGRES_PASSWORD_FILE", secret)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, secret, cfg.Postgres.PasswordFile)

	conn, err := cfg.Postgres.ConnString()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://sweeper:s3cret@db:5432/records?sslmode=disable", conn)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"bad mode", `mode = "staging"`, ErrBadMode},
		{"production without secret", `mode = "production"`, ErrMissingSecret},
		{"zero tick", "[session]\ntick = \"0s\"", ErrBadSessionTimes},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "c.toml", tt.content))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFieldsOmitSecrets(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Session.Secret = "hunter2"
	cfg.Postgres.Password = "p@ss"

	for key, value := range cfg.Fields() {
		assert.NotEqual(t, "hunter2", value, key)
		assert.NotEqual(t, "p@ss", value, key)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := writeFile(t, ".env", "SHIELDSWEEPER_ADDR=:7070\n")
	t.Setenv("SHIELDSWEEPER_ADDR", "")
	os.Unsetenv("SHIELDSWEEPER_ADDR")

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"), path))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
}

func TestNewLogger(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Log.File = filepath.Join(t.TempDir(), "shieldsweeper.log")

	var buf bytes.Buffer
	log, err := NewLogger(cfg, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)

	log.Info("hello")
	assert.Contains(t, buf.String(), "hello")

	cfg.Mode = "production"
	cfg.Log.File = ""
	log, err = NewLogger(cfg, &buf)
	require.NoError(t, err)
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)
}

func TestJWT(t *testing.T) {
	j, err := NewJWT("secret", time.Hour)
	require.NoError(t, err)

	claims := jwt.RegisteredClaims{Subject: "abc", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	token, err := j.Sign(claims)
	require.NoError(t, err)

	var parsed jwt.RegisteredClaims
	_, err = j.ParseWithClaims(token, &parsed)
	require.NoError(t, err)
	assert.Equal(t, "abc", parsed.Subject)

	other, err := NewJWT("", time.Hour)
	require.NoError(t, err)
	_, err = other.ParseWithClaims(token, &jwt.RegisteredClaims{})
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestSessionToken(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := SessionToken(r)
	assert.False(t, ok)

	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
	token, ok := SessionToken(r)
	assert.True(t, ok)
	assert.Equal(t, "from-cookie", token)

	r.Header.Set("Authorization", "Bearer from-header")
	token, ok = SessionToken(r)
	assert.True(t, ok)
	assert.Equal(t, "from-header", token)

	w := httptest.NewRecorder()
	CookiesConfig{SameSite: "lax"}.SetSession(w, "tok", time.Now().Add(time.Hour))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
	assert.True(t, cookies[0].HttpOnly)
}
