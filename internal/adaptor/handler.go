package adaptor

import (
	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/usecase"
)

type Handler struct {
	Booking *BookingHandler
	Admin   *AdminHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Admin:   NewAdminHandler(service.Admin, log),
	}
}
