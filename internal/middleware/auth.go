package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shopmate/shopmate-go/internal/crypto"
	"github.com/shopmate/shopmate-go/internal/model"
)

type contextKey string

const userIDKey contextKey = "userID"

// RoleStore looks up users for the admin gate. Implemented by
// repository.UserRepository.
type RoleStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// RequireSignIn returns middleware that validates the session token from the
// Authorization header. The header carries the raw token string, no scheme
// prefix. Expired and malformed tokens get the same response so clients
// learn nothing about token validity. Failures answer with an explicit 401.
func RequireSignIn(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				writeUnauthorized(w, "missing authorization header")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeUnauthorized(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IsAdmin returns middleware restricting a route to admin-role users. The
// role is re-read from the store on every request rather than trusted from
// the token, so a role change takes effect without reissuing tokens.
func IsAdmin(store RoleStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "UnAuthorized Access")
				return
			}

			user, err := store.GetByID(r.Context(), userID)
			if err != nil {
				slog.Error("admin gate: user lookup failed", "user_id", userID, "error", err)
				writeUnauthorized(w, "UnAuthorized Access")
				return
			}

			if user.Role != model.RoleAdmin {
				writeUnauthorized(w, "UnAuthorized Access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// WithUserID returns a context carrying the given user id. Intended for
// handler tests that bypass RequireSignIn.
func WithUserID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(model.Envelope{Success: false, Message: msg})
}
