package usecase

import (
	"sync"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/data/ledger"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

type Service struct {
	Booking BookingService
	Admin   AdminService
}

// NewService wires the services around one rule set and one mutex. Every
// load-apply-save cycle runs under that mutex, which is what keeps two
// submissions from both seeing the same free seats.
func NewService(store repository.BookingStore, interest repository.InterestRepository, config *utils.Config, log *zap.Logger) *Service {
	mu := &sync.Mutex{}
	rules := ledger.New(config.Event.SeatCapacity, config.Event.TicketPrice)

	return &Service{
		Booking: NewBookingService(store, interest, rules, mu, config, log),
		Admin:   NewAdminService(store, rules, mu, log),
	}
}
