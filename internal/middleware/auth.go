package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/menu-cms/internal/auth"
)

// TokenVerifier validates admin tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AdminAuth middleware validates the Bearer token from the Authorization header.
// A missing token is 401, an invalid or expired one is 403.
func AdminAuth(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))

			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Unauthorized: bearer token required")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				writeAuthError(w, http.StatusForbidden, "Forbidden: invalid or expired token")
				return
			}

			recordSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
