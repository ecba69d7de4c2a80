package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

// JWTAuth validates the Bearer token and stores the account id and role in the
// request context under AccountIDCtxKey / AccountRoleCtxKey.
func JWTAuth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				http.Error(w, "Authorization header with Bearer token is required", http.StatusUnauthorized)
				return
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}
			sub, _ := claims["sub"].(string)
			role, _ := claims["role"].(string)
			if sub == "" || role == "" {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDCtxKey, sub)
			ctx = context.WithValue(ctx, AccountRoleCtxKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a subtree to accounts carrying one of the given roles.
// Must run after JWTAuth.
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[string(role)] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(AccountRoleCtxKey).(string)
			if _, ok := allowed[role]; !ok {
				http.Error(w, "Insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AccountID extracts the authenticated account id placed by JWTAuth.
func AccountID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(AccountIDCtxKey).(string)
	return id, ok && id != ""
}

// AccountRole extracts the authenticated role placed by JWTAuth.
func AccountRole(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(AccountRoleCtxKey).(string)
	return entity.Role(role), ok && role != ""
}
