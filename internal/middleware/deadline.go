package middleware

import (
	"net/http"
	"time"
)

// WriteDeadline moves the connection write deadline d into the future, for
// routes that may run longer than the server's WriteTimeout. Writers that do
// not support deadlines are left alone.
func WriteDeadline(d time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = http.NewResponseController(w).SetWriteDeadline(time.Now().Add(d))
			next.ServeHTTP(w, r)
		})
	}
}
