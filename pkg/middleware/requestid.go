package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// RequestID tags every request with an id, keeping one supplied by the
// caller when present. The id is echoed in the response header and made
// available to handlers through the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", id)
		ctx := utils.SetRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
