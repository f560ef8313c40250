package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/vancomm/shieldsweeper/internal/config"
)

var ErrTokenMismatch = errors.New("token does not belong to this session")

type Claims struct {
	SessionID string `json:"session_id"`
	jwt.RegisteredClaims
}

// Tokens binds clients to the sessions they created.
type Tokens struct {
	jwt *config.JWT
	now func() time.Time
}

func NewTokens(j *config.JWT) *Tokens {
	return &Tokens{jwt: j, now: time.Now}
}

func (t *Tokens) Issue(id uuid.UUID) (string, time.Time, error) {
	now := t.now()
	expires := now.Add(t.jwt.TokenLifetime())
	claims := &Claims{
		SessionID: id.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := t.jwt.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("unable to sign session token: %w", err)
	}
	return token, expires, nil
}

func (t *Tokens) Verify(token string, id uuid.UUID) error {
	var claims Claims
	if _, err := t.jwt.ParseWithClaims(token, &claims); err != nil {
		return err
	}
	if claims.SessionID != id.String() {
		return ErrTokenMismatch
	}
	return nil
}
