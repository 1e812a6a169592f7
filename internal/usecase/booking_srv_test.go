package usecase_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/data/ledger"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/dto/request"
	"github.com/gfragi/book-seat-pay/internal/usecase"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// newTestService runs the services against a real CSV store in a temp
// dir, the same wiring production uses with the default driver.
func newTestService(t *testing.T, capacity int) (*usecase.Service, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := &utils.Config{
		Event: utils.EventConfig{
			SeatCapacity:  capacity,
			TicketPrice:   10,
			DeadlineLabel: "20 December 2025",
		},
	}
	store := repository.NewCSVStore(filepath.Join(dir, "payments.csv"), filepath.Join(dir, "backups"))
	interest := repository.NewCSVInterestRepository(filepath.Join(dir, "interest.csv"))

	return usecase.NewService(store, interest, cfg, zap.NewNop()), dir
}

func bookingRequest(name, email string, child, adult int) *request.SubmitBookingRequest {
	return &request.SubmitBookingRequest{
		ParentName:    name,
		Email:         email,
		ChildClass:    "B1",
		ChildTickets:  child,
		AdultTickets:  adult,
		PaymentMethod: "IRIS",
	}
}

func TestSubmitInterestPersistsBooking(t *testing.T) {
	svc, _ := newTestService(t, 85)

	created, err := svc.Booking.SubmitInterest(context.Background(), bookingRequest("Maria", "Maria@Example.com", 2, 1))
	require.NoError(t, err)
	require.Equal(t, "EVT-001", created.PaymentCode)
	require.Equal(t, 30.0, created.TotalAmount)

	found, err := svc.Booking.LookupBooking(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.Equal(t, created, found.Booking)
	require.Nil(t, found.Interest, "no registry file means no declaration to echo")

	avail, err := svc.Booking.Availability(context.Background())
	require.NoError(t, err)
	require.Equal(t, 85, avail.Capacity)
	require.Equal(t, 3, avail.SeatsUsed)
	require.Equal(t, 82, avail.SeatsAvailable)
	require.Equal(t, 0, avail.WaitlistEntries)
	require.Equal(t, 10, avail.TicketPrice)
	require.Equal(t, "20 December 2025", avail.PaymentDeadline)
}

func TestSubmitInterestValidation(t *testing.T) {
	svc, _ := newTestService(t, 85)

	_, err := svc.Booking.SubmitInterest(context.Background(), &request.SubmitBookingRequest{
		ParentName:    "Maria",
		Email:         "not-an-email",
		ChildTickets:  1,
		PaymentMethod: "IRIS",
	})
	require.ErrorIs(t, err, usecase.ErrValidation)

	_, err = svc.Booking.SubmitInterest(context.Background(), &request.SubmitBookingRequest{
		ParentName:    "Maria",
		Email:         "maria@example.com",
		ChildTickets:  1,
		PaymentMethod: "PayPal",
	})
	require.ErrorIs(t, err, usecase.ErrValidation, "unknown payment methods are rejected")

	_, err = svc.Booking.SubmitInterest(context.Background(), bookingRequest("Maria", "maria@example.com", 0, 0))
	require.ErrorIs(t, err, usecase.ErrValidation, "a booking without tickets is meaningless")
}

func TestSubmitInterestHonorsRegistry(t *testing.T) {
	svc, dir := newTestService(t, 85)

	registry := "timestamp,parent_name,email,child_class,child_tickets,adult_tickets\n" +
		"2025-11-01 10:00:00,Maria,maria@example.com,B1,2,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interest.csv"), []byte(registry), 0o644))

	_, err := svc.Booking.SubmitInterest(context.Background(), bookingRequest("Maria", "maria@example.com", 3, 1))
	var limErr *ledger.DeclaredLimitError
	require.ErrorAs(t, err, &limErr)
	require.Equal(t, 3, limErr.Declared)

	_, err = svc.Booking.SubmitInterest(context.Background(), bookingRequest("Maria", "maria@example.com", 2, 1))
	require.NoError(t, err)

	// An email the registry never saw is not capped.
	_, err = svc.Booking.SubmitInterest(context.Background(), bookingRequest("Nikos", "nikos@example.com", 4, 4))
	require.NoError(t, err)
}

func TestSubmitInterestFullHouseGoesToWaitlist(t *testing.T) {
	svc, _ := newTestService(t, 4)

	_, err := svc.Booking.SubmitInterest(context.Background(), bookingRequest("Anna", "anna@example.com", 2, 1))
	require.NoError(t, err)

	_, err = svc.Booking.SubmitInterest(context.Background(), bookingRequest("Ben", "ben@example.com", 1, 1))
	var capErr *ledger.CapacityError
	require.ErrorAs(t, err, &capErr)
	require.Equal(t, 1, capErr.Available)

	entry, err := svc.Booking.SubmitWaitlist(context.Background(), &request.SubmitWaitlistRequest{
		ParentName:   "Ben",
		Email:        "ben@example.com",
		ChildTickets: 1,
		AdultTickets: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 1, entry.PriorityNumber)
	require.Empty(t, entry.PaymentCode)

	// The waiting line shows up in the public availability numbers.
	avail, err := svc.Booking.Availability(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, avail.WaitlistEntries)
	require.Equal(t, 3, avail.SeatsUsed, "waitlist seats stay outside the capacity count")
}

func TestLookupBooking(t *testing.T) {
	svc, _ := newTestService(t, 85)

	_, err := svc.Booking.LookupBooking(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, usecase.ErrBookingNotFound)

	_, err = svc.Booking.LookupBooking(context.Background(), "   ")
	require.ErrorIs(t, err, usecase.ErrValidation)
}

func TestLookupBookingReturnsDeclarationBeforeFirstBooking(t *testing.T) {
	svc, dir := newTestService(t, 85)

	registry := "timestamp,parent_name,email,child_class,child_tickets,adult_tickets\n" +
		"2025-11-01 10:00:00,Maria Papadopoulou,maria@example.com,B1,2,1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "interest.csv"), []byte(registry), 0o644))

	// Nothing booked yet, but the declaration pre-fills the form.
	found, err := svc.Booking.LookupBooking(context.Background(), " Maria@Example.COM ")
	require.NoError(t, err)
	require.Nil(t, found.Booking)
	require.NotNil(t, found.Interest)
	require.Equal(t, "Maria Papadopoulou", found.Interest.ParentName)
	require.Equal(t, "B1", found.Interest.ChildClass)
	require.Equal(t, 2, found.Interest.ChildTickets)
	require.Equal(t, 1, found.Interest.AdultTickets)
	require.Equal(t, 3, found.Interest.TotalTickets)

	// Once a booking exists the lookup carries both parts.
	_, err = svc.Booking.SubmitInterest(context.Background(), bookingRequest("Maria", "maria@example.com", 1, 1))
	require.NoError(t, err)

	found, err = svc.Booking.LookupBooking(context.Background(), "maria@example.com")
	require.NoError(t, err)
	require.NotNil(t, found.Booking)
	require.Equal(t, "EVT-001", found.Booking.PaymentCode)
	require.NotNil(t, found.Interest)
	require.Equal(t, 3, found.Interest.TotalTickets)
}

func TestConcurrentSubmissionsNeverOverbook(t *testing.T) {
	svc, _ := newTestService(t, 30)

	var wg sync.WaitGroup
	var mu sync.Mutex
	results := make([]error, 0, 20)

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			email := fmt.Sprintf("parent%02d@example.com", i)
			_, err := svc.Booking.SubmitInterest(context.Background(), bookingRequest("Parent", email, 1, 1))

			mu.Lock()
			results = append(results, err)
			mu.Unlock()
		}(i)
	}
	wg.Wait()

	accepted, rejected := 0, 0
	for _, err := range results {
		if err == nil {
			accepted++
			continue
		}
		var capErr *ledger.CapacityError
		require.ErrorAs(t, err, &capErr, "the only acceptable failure is running out of seats")
		rejected++
	}
	require.Equal(t, 15, accepted, "30 seats hold exactly 15 two-ticket bookings")
	require.Equal(t, 5, rejected)

	avail, err := svc.Booking.Availability(context.Background())
	require.NoError(t, err)
	require.Equal(t, 30, avail.SeatsUsed)
	require.Equal(t, 0, avail.SeatsAvailable)
}
