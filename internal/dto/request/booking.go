package request

type SubmitBookingRequest struct {
	ParentName    string `json:"parent_name" validate:"required,min=2,max=120"`
	Email         string `json:"email" validate:"required,email"`
	ChildClass    string `json:"child_class" validate:"max=60"`
	ChildTickets  int    `json:"child_tickets" validate:"gte=0,lte=20"`
	AdultTickets  int    `json:"adult_tickets" validate:"gte=0,lte=20"`
	PaymentMethod string `json:"payment_method" validate:"required,oneof=IRIS Revolut Cash"`
}

type SubmitWaitlistRequest struct {
	ParentName   string `json:"parent_name" validate:"required,min=2,max=120"`
	Email        string `json:"email" validate:"required,email"`
	ChildClass   string `json:"child_class" validate:"max=60"`
	ChildTickets int    `json:"child_tickets" validate:"gte=0,lte=20"`
	AdultTickets int    `json:"adult_tickets" validate:"gte=0,lte=20"`
}
