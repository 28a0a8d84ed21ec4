package middleware

import (
	"hrbot/internal/models"
	"net/http"
)

// ДОЛЖЕН стоять ПОСЛЕ JWTAuth, чтобы роль уже была в контексте.
func AdminFastLane(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(ContextRole).(string)
		if role == models.RoleAdmin {
			r = r.WithContext(WithSkipGuards(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}
