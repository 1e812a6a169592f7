package wire

import (
	"github.com/go-chi/chi/v5"

	"github.com/gfragi/book-seat-pay/internal/adaptor"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	// ==================== PUBLIC ROUTES ====================

	// GET /api/availability - seat counts, price and deadline
	r.Get("/api/availability", bookingHandler.GetAvailability)

	// GET /api/bookings/lookup?email= - find a family's booking
	r.Get("/api/bookings/lookup", bookingHandler.LookupBooking)

	// POST /api/bookings - submit or edit a booking
	r.Post("/api/bookings", bookingHandler.SubmitBooking)

	// POST /api/waitlist - join or edit a waitlist entry
	r.Post("/api/waitlist", bookingHandler.SubmitWaitlist)
}
