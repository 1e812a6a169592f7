package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

// Ledger applies booking rules against a record table for one event.
type Ledger struct {
	capacity  int
	unitPrice int
}

// New builds a Ledger for a venue with the given seat capacity and
// per-ticket price in euros.
func New(capacity, unitPrice int) *Ledger {
	return &Ledger{capacity: capacity, unitPrice: unitPrice}
}

// Capacity returns the configured seat capacity.
func (l *Ledger) Capacity() int {
	return l.capacity
}

// UnitPrice returns the configured per-ticket price in euros.
func (l *Ledger) UnitPrice() int {
	return l.unitPrice
}

// Submission is one family's booking request, shared by the interest and
// waitlist flows. Method is ignored on the waitlist path.
type Submission struct {
	ParentName   string
	Email        string
	ChildClass   string
	ChildTickets int
	AdultTickets int
	Method       entity.PaymentMethod
}

// TotalTickets returns the seat count the submission asks for.
func (s Submission) TotalTickets() int {
	return s.ChildTickets + s.AdultTickets
}

// SeatsUsed sums the tickets held by non-waitlist records. Waitlist rows
// reserve nothing until they are promoted.
func SeatsUsed(records []entity.Booking) int {
	used := 0
	for _, r := range records {
		if r.Category != entity.CategoryWaitlist {
			used += r.TotalTickets
		}
	}
	return used
}

// Available returns the seats still open, never negative.
func (l *Ledger) Available(records []entity.Booking) int {
	open := l.capacity - SeatsUsed(records)
	if open < 0 {
		return 0
	}
	return open
}

// FindBooking returns the index of the record whose email matches after
// normalization, or -1. Emails are unique in the table so the first hit
// is the only one.
func FindBooking(records []entity.Booking, email string) int {
	want := entity.NormalizeEmail(email)
	for i, r := range records {
		if entity.NormalizeEmail(r.Email) == want {
			return i
		}
	}
	return -1
}

// FindInterest returns the index of the first registry entry matching the
// email, or -1. The registry import keeps duplicates, so first match wins.
func FindInterest(entries []entity.InterestEntry, email string) int {
	want := entity.NormalizeEmail(email)
	for i, e := range entries {
		if entity.NormalizeEmail(e.Email) == want {
			return i
		}
	}
	return -1
}

// NextPaymentCode issues the code for a new confirmed-flow record. Codes
// derive from the table length rather than a persistent sequence, so a
// restored or hand-edited table can make the next code collide with one
// already present.
func NextPaymentCode(records []entity.Booking) string {
	return fmt.Sprintf("EVT-%03d", len(records)+1)
}

// NextWaitlistPriority returns one past the highest priority in the
// table, or 1 for the first entry. Promotions leave gaps behind; only
// the relative order of the remaining entries matters.
func NextWaitlistPriority(records []entity.Booking) int {
	max := 0
	for _, r := range records {
		if r.PriorityNumber > max {
			max = r.PriorityNumber
		}
	}
	return max + 1
}

// UpsertInterest adds or replaces the booking for the submission's email
// in the confirmed flow. declared carries the ticket total the email
// registered on the interest form, or nil when the email is not on the
// registry. The input table is never modified; on success the returned
// table has the new or updated record in place.
//
// A paid record is immutable. Capacity is checked before the declared
// limit, and the submitter's currently held seats are released before
// counting, so shrinking a booking always succeeds.
func (l *Ledger) UpsertInterest(records []entity.Booking, sub Submission, declared *int, now time.Time) ([]entity.Booking, entity.Booking, error) {
	idx := FindBooking(records, sub.Email)

	previousTotal := 0
	if idx >= 0 {
		existing := records[idx]
		if existing.PaymentStatus == entity.PaymentStatusPaid {
			return nil, entity.Booking{}, ErrAlreadyPaid
		}
		if existing.Category != entity.CategoryWaitlist {
			previousTotal = existing.TotalTickets
		}
	}

	requested := sub.TotalTickets()
	open := l.capacity - (SeatsUsed(records) - previousTotal)
	if requested > open {
		if open < 0 {
			open = 0
		}
		return nil, entity.Booking{}, &CapacityError{Requested: requested, Available: open}
	}
	if declared != nil && requested > *declared {
		return nil, entity.Booking{}, &DeclaredLimitError{Requested: requested, Declared: *declared}
	}

	record := entity.Booking{
		Timestamp:     now,
		ParentName:    strings.TrimSpace(sub.ParentName),
		Email:         entity.NormalizeEmail(sub.Email),
		ChildClass:    strings.TrimSpace(sub.ChildClass),
		ChildTickets:  sub.ChildTickets,
		AdultTickets:  sub.AdultTickets,
		TotalTickets:  requested,
		TotalAmount:   float64(requested * l.unitPrice),
		PaymentMethod: sub.Method,
		PaymentStatus: entity.PaymentStatusPending,
		Category:      entity.CategoryInterest,
	}

	out := make([]entity.Booking, len(records))
	copy(out, records)

	switch {
	case idx < 0:
		record.PaymentCode = NextPaymentCode(records)
		out = append(out, record)
	case records[idx].Category == entity.CategoryWaitlist:
		// Promotion off the waitlist gets a fresh code and drops the
		// priority slot.
		record.PaymentCode = NextPaymentCode(records)
		out[idx] = record
	default:
		record.PaymentCode = records[idx].PaymentCode
		out[idx] = record
	}
	return out, record, nil
}

// UpsertWaitlist adds or replaces the booking for the submission's email
// in the waitlist flow. Waitlist rows hold no seats, so neither capacity
// nor the declared limit applies. A record already on the waitlist keeps
// its priority across edits; a confirmed-flow record moving here loses its
// payment code and joins at the back.
func (l *Ledger) UpsertWaitlist(records []entity.Booking, sub Submission, now time.Time) ([]entity.Booking, entity.Booking, error) {
	idx := FindBooking(records, sub.Email)
	if idx >= 0 && records[idx].PaymentStatus == entity.PaymentStatusPaid {
		return nil, entity.Booking{}, ErrAlreadyPaid
	}

	requested := sub.TotalTickets()
	record := entity.Booking{
		Timestamp:     now,
		ParentName:    strings.TrimSpace(sub.ParentName),
		Email:         entity.NormalizeEmail(sub.Email),
		ChildClass:    strings.TrimSpace(sub.ChildClass),
		ChildTickets:  sub.ChildTickets,
		AdultTickets:  sub.AdultTickets,
		TotalTickets:  requested,
		PaymentStatus: entity.PaymentStatusWaitlist,
		Category:      entity.CategoryWaitlist,
	}

	if idx >= 0 && records[idx].PriorityNumber > 0 {
		record.PriorityNumber = records[idx].PriorityNumber
	} else {
		record.PriorityNumber = NextWaitlistPriority(records)
	}

	out := make([]entity.Booking, len(records))
	copy(out, records)
	if idx >= 0 {
		out[idx] = record
	} else {
		out = append(out, record)
	}
	return out, record, nil
}

// MarkPaid confirms payment for the record carrying the code. Marking an
// already-paid record again is a no-op that returns the record unchanged.
// Nothing but the payment status changes, so the timestamp keeps telling
// when the booking itself was last edited.
func MarkPaid(records []entity.Booking, code string) ([]entity.Booking, entity.Booking, error) {
	code = strings.TrimSpace(code)
	idx := -1
	for i, r := range records {
		if r.PaymentCode != "" && r.PaymentCode == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entity.Booking{}, ErrCodeNotFound
	}
	if records[idx].Category == entity.CategoryWaitlist {
		return nil, entity.Booking{}, ErrWaitlistNotPayable
	}
	if records[idx].PaymentStatus == entity.PaymentStatusPaid {
		return records, records[idx], nil
	}

	out := make([]entity.Booking, len(records))
	copy(out, records)
	out[idx].PaymentStatus = entity.PaymentStatusPaid
	return out, out[idx], nil
}
