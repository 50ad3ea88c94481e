package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/2beens/healthtrack/internal/auth"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"
	"github.com/2beens/healthtrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=middleware_test
type sessionResolver interface {
	Session(ctx context.Context, token string) (*auth.Session, error)
}

type AuthMiddlewareHandler struct {
	sessions sessionResolver
}

func NewAuthMiddlewareHandler(sessions sessionResolver) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		sessions: sessions,
	}
}

// AuthCheck puts the session of the request (if any) into its context.
// It never rejects, guarded routes use RequireLogin.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			session, err := h.sessions.Session(ctx, token)
			if err != nil {
				log.Errorf("[failed login check] => %s: %s", r.URL.Path, err)
				span.SetStatus(codes.Error, "check-logged-err")
				span.RecordError(err)
			} else if session == nil {
				log.Tracef("[invalid token] [auth middleware] anonymous => %s", r.URL.Path)
				span.SetStatus(codes.Ok, "not-logged")
			} else {
				span.SetAttributes(attribute.Int("user.id", session.UserID))
				span.SetStatus(codes.Ok, "ok")
			}
			span.End()

			if session != nil {
				r = r.WithContext(auth.ContextWithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireLogin rejects anonymous requests. API paths get a 401 JSON error,
// pages are redirected to the login.
func RequireLogin() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.SessionFromContext(r.Context()) != nil {
				next.ServeHTTP(w, r)
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				pkg.WriteJSONError(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			http.Redirect(w, r, BasePathFromContext(r.Context())+"/login", http.StatusFound)
		})
	}
}
