package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dadportal/dinojump-go/internal/api/apierr"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
)

type contextKey string

const sessionContextKey contextKey = "guardian_session"

// Guardian creates middleware requiring a verified guardian session.
// Routes behind it mutate parental settings; everything else is open.
func Guardian(gate *guardian.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := gate.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the guardian token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// GetSession returns the guardian session from the request context
func GetSession(ctx context.Context) *guardian.Session {
	session, _ := ctx.Value(sessionContextKey).(*guardian.Session)
	return session
}

// MustGetSession returns the guardian session or panics
func MustGetSession(ctx context.Context) *guardian.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no guardian session in context - middleware not applied?")
	}
	return session
}
