package middleware

import (
	"context"
	"net/http"
	"regexp"
	"strings"
)

var usrPrefixRegex = regexp.MustCompile(`^/usr/\d+`)

type basePathCtxKey struct{}

func BasePathFromContext(ctx context.Context) string {
	basePath, _ := ctx.Value(basePathCtxKey{}).(string)
	return basePath
}

// BasePath detects the prefix the service is mounted under, from a /usr/<n> path segment
// (which is stripped before routing) or the X-Forwarded-Prefix header, and falls back to fallback.
// It must wrap the router, not be used as router middleware.
func BasePath(fallback string, next http.Handler) http.Handler {
	fallback = strings.TrimRight(fallback, "/")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		basePath := usrPrefixRegex.FindString(r.URL.Path)
		if basePath != "" {
			r = r.Clone(r.Context())
			r.URL.Path = strings.TrimPrefix(r.URL.Path, basePath)
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = ""
		} else if prefix := r.Header.Get("X-Forwarded-Prefix"); prefix != "" {
			basePath = strings.TrimRight(prefix, "/")
		} else {
			basePath = fallback
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), basePathCtxKey{}, basePath)))
	})
}
