// Package repository persists the booking table and reads the interest
// registry. The table is small enough to travel as a whole, so stores
// expose load and save of the full record list instead of row-level
// operations; the usecase layer serializes those cycles under its lock.
package repository

import (
	"context"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
)

// BookingStore holds the booking table for one event.
type BookingStore interface {
	// Load returns every record in table order.
	Load(ctx context.Context) ([]entity.Booking, error)

	// Save replaces the stored table with records, atomically with
	// respect to readers.
	Save(ctx context.Context, records []entity.Booking) error

	// Replace archives the current table and then stores records in its
	// place. It returns a reference to the archived copy.
	Replace(ctx context.Context, records []entity.Booking) (string, error)
}

// InterestRepository reads the registry of declared interest imported
// from the sign-up form.
type InterestRepository interface {
	Load(ctx context.Context) ([]entity.InterestEntry, error)
}
