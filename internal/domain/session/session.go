package session

import (
	"context"
	"errors"
)

var ErrUnauthenticated = errors.New("authentication required")

// Session is the authenticated caller, established on sign-in and carried
// explicitly through every store operation instead of ambient lookup.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok && s != nil
}
