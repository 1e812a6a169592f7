package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// AdminKey guards the reconciliation routes. The key travels in the
// X-Admin-Key header and is checked against a bcrypt hash derived at
// startup.
func AdminKey(keyHash string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				utils.ResponseUnauthorized(w, "Missing admin key")
				return
			}

			if !utils.CheckPassword(keyHash, key) {
				logger.Warn("admin key rejected",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "Invalid admin key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
