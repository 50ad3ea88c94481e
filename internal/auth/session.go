package auth

import (
	"context"
	"net/http"
	"time"
)

type Session struct {
	Token     string    `json:"-"`
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Session) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.CreatedAt) > ttl
}

type sessionCtxKey struct{}

func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey{}, session)
}

// SessionFromContext returns the logged in user's session, or nil for anonymous requests.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(sessionCtxKey{}).(*Session)
	return session
}

const (
	SessionCookieName = "healthtrack_session"
	// SessionHeader carries the token for API clients that do not keep cookies.
	SessionHeader = "X-Session-Token"
)

// TokenFromRequest returns the session token of r, the header wins over the cookie.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(SessionHeader); token != "" {
		return token
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
