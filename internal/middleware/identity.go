package middleware

import (
	"context"
	"net/http"
)

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// Identity resolves the authenticated caller from the X-User-ID header set by
// the upstream auth layer and puts the identifier on the request context.
// Requests without an identity are rejected.
func Identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("X-User-ID")
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"missing user identity"}`))
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the caller identifier stored by Identity, or "".
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(ctxKeyUserID).(string)
	return userID
}
