package middleware

import (
	"context"
	"hrbot/internal/logger"
	"hrbot/internal/reqctx"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func JWTAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				logger.WithCtx(r.Context()).Warn("JWTAuth: отсутствует access token")
				http.Error(w, "Отсутствует access token", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")

			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.WithCtx(r.Context()).Warn("JWTAuth: неверный или просроченный токен",
					zap.Error(err))
				http.Error(w, "Неверный или просроченный токен", http.StatusUnauthorized)
				return
			}

			userID, ok1 := claims["user_id"].(float64)
			role, ok2 := claims["role"].(string)
			if !ok1 || !ok2 {
				logger.WithCtx(r.Context()).Warn("JWTAuth: недопустимый payload",
					zap.Any("claims", claims))
				http.Error(w, "Недопустимый payload", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextUserID, int(userID))
			ctx = context.WithValue(ctx, ContextRole, role)
			ctx = reqctx.WithUserID(ctx, int(userID))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
