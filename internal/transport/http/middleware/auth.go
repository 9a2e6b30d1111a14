package middleware

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dvidovic/devconnect/internal/auth"
)

type contextKey string

const UserIDKey contextKey = "user_id"

// TokenHeader is the request header carrying the bearer token.
const TokenHeader = "x-auth-token"

func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := r.Header.Get(TokenHeader)
			if tokenStr == "" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"No token, authorization denied"}}`, http.StatusUnauthorized)
				return
			}

			userID, err := tokens.Verify(tokenStr)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"No token, authorization denied"}}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from request context
func GetUserID(ctx context.Context) primitive.ObjectID {
	return ctx.Value(UserIDKey).(primitive.ObjectID)
}
