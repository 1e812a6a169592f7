package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/dto/request"
	"github.com/gfragi/book-seat-pay/internal/usecase"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetAvailability handles GET /api/availability (public)
func (h *BookingHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.service.Availability(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// LookupBooking handles GET /api/bookings/lookup?email= (public)
func (h *BookingHandler) LookupBooking(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.ResponseBadRequest(w, "Email is required", nil)
		return
	}

	result, err := h.service.LookupBooking(r.Context(), email)
	if err != nil {
		respondServiceError(h.log, w, err, "lookup booking")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// SubmitBooking handles POST /api/bookings (public)
func (h *BookingHandler) SubmitBooking(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.SubmitInterest(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "submit booking")
		return
	}

	utils.ResponseCreated(w, "booking recorded", booking)
}

// SubmitWaitlist handles POST /api/waitlist (public)
func (h *BookingHandler) SubmitWaitlist(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitWaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	entry, err := h.service.SubmitWaitlist(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "submit waitlist entry")
		return
	}

	utils.ResponseCreated(w, "waitlist entry recorded", entry)
}
