package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

const (
	// SessionHeader is the header carrying the cart session ID.
	SessionHeader = "X-Session-ID"

	// SessionContextKey is the context key for the session ID
	SessionContextKey contextKey = "session_id"
)

// Session ensures every request carries a cart session ID. A client without
// one gets a fresh UUID; the ID is echoed on the response so the table-side
// client can persist it. Carts are keyed by this ID.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get(SessionHeader)
		if sessionID == "" {
			sessionID = uuid.New().String()
		}

		w.Header().Set(SessionHeader, sessionID)

		ctx := context.WithValue(r.Context(), SessionContextKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionID retrieves the session ID from the context
func GetSessionID(ctx context.Context) string {
	if id, ok := ctx.Value(SessionContextKey).(string); ok {
		return id
	}
	return ""
}
