// internal/wire/wire.go
package wire

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/adaptor"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/usecase"
	"github.com/gfragi/book-seat-pay/pkg/middleware"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// App holds the assembled dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(store repository.BookingStore, interest repository.InterestRepository, config *utils.Config, logger *zap.Logger) (*App, error) {
	service := usecase.NewService(store, interest, config, logger)
	handler := adaptor.NewHandler(service, logger)

	// The admin passphrase is only ever compared against this hash.
	adminKeyHash, err := utils.HashPassword(config.Admin.Password)
	if err != nil {
		return nil, fmt.Errorf("hash admin key: %w", err)
	}

	router := setupRouter(handler, adminKeyHash, logger)

	return &App{
		Router: router,
	}, nil
}

// setupRouter configures the chi router
func setupRouter(handler *adaptor.Handler, adminKeyHash string, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Apply routes
	wireBooking(r, handler.Booking)
	wireAdmin(r, handler.Admin, adminKeyHash, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
