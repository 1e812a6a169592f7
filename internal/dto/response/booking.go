package response

import (
	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

type BookingResponse struct {
	Timestamp      string               `json:"timestamp"`
	ParentName     string               `json:"parent_name"`
	Email          string               `json:"email"`
	ChildClass     string               `json:"child_class,omitempty"`
	ChildTickets   int                  `json:"child_tickets"`
	AdultTickets   int                  `json:"adult_tickets"`
	TotalTickets   int                  `json:"total_tickets"`
	TotalAmount    float64              `json:"total_amount"`
	PaymentMethod  entity.PaymentMethod `json:"payment_method,omitempty"`
	PaymentCode    string               `json:"payment_code,omitempty"`
	PaymentStatus  entity.PaymentStatus `json:"payment_status"`
	Category       entity.Category      `json:"category"`
	PriorityNumber int                  `json:"priority_number,omitempty"`
}

type AvailabilityResponse struct {
	Capacity        int    `json:"capacity"`
	SeatsUsed       int    `json:"seats_used"`
	SeatsAvailable  int    `json:"seats_available"`
	WaitlistEntries int    `json:"waitlist_entries"`
	TicketPrice     int    `json:"ticket_price"`
	PaymentDeadline string `json:"payment_deadline"`
}

// InterestResponse is the registry declaration echoed back so the form
// can pre-fill a first-time booking.
type InterestResponse struct {
	ParentName   string `json:"parent_name"`
	ChildClass   string `json:"child_class,omitempty"`
	ChildTickets int    `json:"child_tickets"`
	AdultTickets int    `json:"adult_tickets"`
	TotalTickets int    `json:"total_tickets"`
}

// LookupResponse pairs what the system knows about an email: the booking
// already on file and the declaration from the interest form. Either part
// may be absent.
type LookupResponse struct {
	Booking  *BookingResponse  `json:"booking,omitempty"`
	Interest *InterestResponse `json:"interest,omitempty"`
}

// Helper converters

func InterestToResponse(e entity.InterestEntry) InterestResponse {
	return InterestResponse{
		ParentName:   e.ParentName,
		ChildClass:   e.ChildClass,
		ChildTickets: e.ChildTickets,
		AdultTickets: e.AdultTickets,
		TotalTickets: e.TotalTickets,
	}
}

func BookingToResponse(b entity.Booking) BookingResponse {
	return BookingResponse{
		Timestamp:      b.Timestamp.Format(entity.TimeLayout),
		ParentName:     b.ParentName,
		Email:          b.Email,
		ChildClass:     b.ChildClass,
		ChildTickets:   b.ChildTickets,
		AdultTickets:   b.AdultTickets,
		TotalTickets:   b.TotalTickets,
		TotalAmount:    b.TotalAmount,
		PaymentMethod:  b.PaymentMethod,
		PaymentCode:    b.PaymentCode,
		PaymentStatus:  b.PaymentStatus,
		Category:       b.Category,
		PriorityNumber: b.PriorityNumber,
	}
}

func BookingsToResponse(records []entity.Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(records))
	for _, r := range records {
		out = append(out, BookingToResponse(r))
	}
	return out
}
