// Package ledger owns the seat-accounting and waitlist-priority rules for
// the event. It is pure bookkeeping over the in-memory record table:
// no I/O, no locking, no logging. Callers load the table, apply one
// operation, and persist the result; callers that may race must serialize
// those cycles themselves (the usecase layer holds that lock).
package ledger

import (
	"errors"
	"fmt"
)

// Business errors returned by ledger operations. Handlers translate these
// into actionable client responses; anything else coming out of the
// booking flow is an unexpected fault.
var (
	// ErrCodeNotFound means no record carries the given payment code.
	ErrCodeNotFound = errors.New("payment code not found")

	// ErrWaitlistNotPayable guards against confirming payment on a
	// waitlist record. Waitlist records have no payment code by
	// construction, so this should be unreachable, but the check stays.
	ErrWaitlistNotPayable = errors.New("waitlist records cannot be marked paid")

	// ErrAlreadyPaid means the record was confirmed paid by an
	// administrator and can no longer be edited through the booking flow.
	ErrAlreadyPaid = errors.New("booking already marked paid")
)

// CapacityError reports a submission that would push the non-waitlist
// ticket sum past the venue capacity. Available is the number of seats
// the submitter could still take, never negative.
type CapacityError struct {
	Requested int
	Available int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("only %d seats available, requested %d", e.Available, e.Requested)
}

// DeclaredLimitError reports a submission exceeding the ticket count the
// email declared on the interest form.
type DeclaredLimitError struct {
	Requested int
	Declared  int
}

func (e *DeclaredLimitError) Error() string {
	return fmt.Sprintf("requested %d tickets but only %d were declared on the interest form", e.Requested, e.Declared)
}
