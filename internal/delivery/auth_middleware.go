package delivery

import (
	"net/http"

	"github.com/Vovarama1992/mimirpublish/internal/ports"
)

// AuthMiddleware requires a valid X-Auth token issued by /api/login.
func AuthMiddleware(auth ports.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Auth")
			if token == "" {
				http.Error(w, "missing token", http.StatusUnauthorized)
				return
			}

			ok, err := auth.ValidateToken(r.Context(), token)
			if err != nil || !ok {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
