package entity

import (
	"strings"
	"time"
)

// TimeLayout is the timestamp format used in the persisted table and in
// API responses.
const TimeLayout = "2006-01-02 15:04:05"

type Category string

const (
	CategoryInterest Category = "interest"
	CategoryWaitlist Category = "waitlist"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusWaitlist PaymentStatus = "waitlist"
)

// PaymentMethod is self-reported by the parent; payment itself happens
// outside the system and is confirmed later by an administrator.
type PaymentMethod string

const (
	PaymentMethodIRIS    PaymentMethod = "IRIS"
	PaymentMethodRevolut PaymentMethod = "Revolut"
	PaymentMethodCash    PaymentMethod = "Cash"
	// PaymentMethodNone is valid only on waitlist records.
	PaymentMethodNone PaymentMethod = ""
)

// Booking is one household's reservation. The table holds at most one
// record per email (compared case-insensitively, trimmed).
//
// TotalTickets is always ChildTickets+AdultTickets, and TotalAmount is
// TotalTickets times the unit price except on waitlist records, which
// carry a zero amount. Both are stored redundantly because the persisted
// table keeps them as columns.
type Booking struct {
	Timestamp     time.Time     `db:"recorded_at"`
	ParentName    string        `db:"parent_name"`
	Email         string        `db:"email"`
	ChildClass    string        `db:"child_class"`
	ChildTickets  int           `db:"child_tickets"`
	AdultTickets  int           `db:"adult_tickets"`
	TotalTickets  int           `db:"total_tickets"`
	TotalAmount   float64       `db:"total_amount"`
	PaymentMethod PaymentMethod `db:"payment_method"`
	PaymentCode   string        `db:"payment_code"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	Category      Category      `db:"category"`
	// PriorityNumber orders the waitlist first-come-first-served. It is
	// zero on interest records.
	PriorityNumber int `db:"priority_number"`
}

// NormalizeEmail lower-cases and trims an email. Records store emails in
// this form too, so lookups and stored values always compare equal.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
