package middleware

import (
	"context"
	"net/http"
	"strings"

	"gathr_server/services"
	"gathr_server/utils"

	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDKey is the context key holding the verified user id.
const userIDKey contextKey = "user_id"

// UserID extracts the verified user id from the request context. Returns
// empty string when the request was not authenticated.
func UserID(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

// RequireAuth is the identity gate adapter: it verifies the HMAC-signed
// bearer token and places the subject user id into the request context.
// Token issuance happens elsewhere; this layer only verifies.
func RequireAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.WriteError(w, nil, services.UnauthorizedError("Unauthorized"))
				return
			}
			token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				utils.WriteError(w, nil, services.UnauthorizedError("Unauthorized"))
				return
			}
			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				utils.WriteError(w, nil, services.UnauthorizedError("Unauthorized"))
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
