package httpapi

import (
	"context"
	"net/http"
	"strings"

	"solis-backend-go/internal/services"
)

type contextKey string

const ctxSession contextKey = "session"

// WithSession attaches the caller's session to the request context when a
// valid bearer token is present. Requests without one proceed anonymously;
// route-level checks decide what that means.
func WithSession(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := services.Session{}
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				tokenStr := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
				session = tokens.ParseSession(tokenStr)
			}
			ctx := context.WithValue(r.Context(), ctxSession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func CurrentSession(r *http.Request) services.Session {
	if value, ok := r.Context().Value(ctxSession).(services.Session); ok {
		return value
	}
	return services.Session{}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !services.IsAuthenticated(CurrentSession(r)) {
			WriteError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := CurrentSession(r)
		if !services.IsAuthenticated(session) {
			WriteError(w, http.StatusUnauthorized, "Authentication failed")
			return
		}
		if !services.IsAdmin(session) {
			WriteError(w, http.StatusForbidden, "Not allowed")
			return
		}
		next.ServeHTTP(w, r)
	})
}
