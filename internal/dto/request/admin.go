package request

type MarkPaidRequest struct {
	PaymentCode string `json:"payment_code" validate:"required,max=20"`
}

// ListBookingsFilter carries the optional query parameters of the admin
// booking list. Values are matched as-is; empty means no filter.
type ListBookingsFilter struct {
	Status   string `validate:"omitempty,oneof=pending paid waitlist"`
	Category string `validate:"omitempty,oneof=interest waitlist"`
	Search   string `validate:"omitempty,max=120"`
}
