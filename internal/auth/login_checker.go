package auth

import (
	"context"
	"errors"
	"time"
)

var ErrNotLogged = errors.New("not logged in")

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	// Check returns the id of the user owning the token.
	Check(ctx context.Context, token string) (string, error)
}

type sessionGetter interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
}

type LoginChecker struct {
	ttl      time.Duration
	tokens   *TokenIssuer
	sessions sessionGetter
}

func NewLoginChecker(ttl time.Duration, tokens *TokenIssuer, sessions sessionGetter) *LoginChecker {
	return &LoginChecker{
		ttl:      ttl,
		tokens:   tokens,
		sessions: sessions,
	}
}

func (c *LoginChecker) Check(ctx context.Context, token string) (string, error) {
	claims, err := c.tokens.Parse(token)
	if err != nil {
		return "", err
	}

	session, err := c.sessions.Get(ctx, claims.SessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return "", ErrNotLogged
	}
	if err != nil {
		return "", err
	}

	if session.UserID != claims.UserID || time.Since(session.CreatedAt) > c.ttl {
		return "", ErrNotLogged
	}

	return session.UserID, nil
}
