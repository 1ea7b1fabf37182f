package rest

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
)

// CredentialProvider supplies the bearer token attached to every admin
// request. It is injected into the client rather than read from module
// state, so tests and multi-account tooling can swap it freely.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// StaticCredentials wraps a token issued out-of-band (the session layer is a
// collaborator, not part of this client). The token is not verified here;
// claims are only inspected to warn the operator about expiry before a
// request goes out and fails server-side.
type StaticCredentials struct {
	token string
}

func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: token}
}

func (s *StaticCredentials) Token(ctx context.Context) (string, error) {
	if s.token == "" {
		return "", errors.Unauthorized("No admin token configured", nil)
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(s.token, claims)
	if err != nil {
		// Opaque tokens are fine; pass them through untouched.
		return s.token, nil
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if time.Now().After(exp.Time) {
			logger.Warn("Admin token expired at %s; requests will be rejected", exp.Time.Format(time.RFC3339))
		}
	}

	return s.token, nil
}

// TokenFunc adapts a closure into a CredentialProvider.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}
