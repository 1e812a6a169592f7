package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/data/entity"
	"github.com/gfragi/book-seat-pay/internal/data/ledger"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/dto/request"
	"github.com/gfragi/book-seat-pay/internal/dto/response"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

type BookingService interface {
	// Public endpoints
	Availability(ctx context.Context) (*response.AvailabilityResponse, error)
	LookupBooking(ctx context.Context, email string) (*response.LookupResponse, error)
	SubmitInterest(ctx context.Context, req *request.SubmitBookingRequest) (*response.BookingResponse, error)
	SubmitWaitlist(ctx context.Context, req *request.SubmitWaitlistRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	store    repository.BookingStore
	interest repository.InterestRepository
	rules    *ledger.Ledger
	mu       *sync.Mutex
	deadline string
	log      *zap.Logger
}

func NewBookingService(store repository.BookingStore, interest repository.InterestRepository, rules *ledger.Ledger, mu *sync.Mutex, config *utils.Config, log *zap.Logger) BookingService {
	return &bookingService{
		store:    store,
		interest: interest,
		rules:    rules,
		mu:       mu,
		deadline: config.Event.DeadlineLabel,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Availability(ctx context.Context) (*response.AvailabilityResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	waiting := 0
	for _, r := range records {
		if r.Category == entity.CategoryWaitlist {
			waiting++
		}
	}

	return &response.AvailabilityResponse{
		Capacity:        s.rules.Capacity(),
		SeatsUsed:       ledger.SeatsUsed(records),
		SeatsAvailable:  s.rules.Available(records),
		WaitlistEntries: waiting,
		TicketPrice:     s.rules.UnitPrice(),
		PaymentDeadline: s.deadline,
	}, nil
}

// LookupBooking answers with the booking on file and the registry
// declaration for the email, so the form can show the current state or
// pre-fill a first-time submission from the declared counts. It fails
// with ErrBookingNotFound only when neither exists.
func (s *bookingService) LookupBooking(ctx context.Context, email string) (*response.LookupResponse, error) {
	if entity.NormalizeEmail(email) == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	entries, err := s.interest.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load interest registry", zap.Error(err))
		return nil, fmt.Errorf("load interest registry: %w", err)
	}

	resp := &response.LookupResponse{}
	if idx := ledger.FindBooking(records, email); idx >= 0 {
		booking := response.BookingToResponse(records[idx])
		resp.Booking = &booking
	}
	if idx := ledger.FindInterest(entries, email); idx >= 0 {
		declared := response.InterestToResponse(entries[idx])
		resp.Interest = &declared
	}

	if resp.Booking == nil && resp.Interest == nil {
		return nil, ErrBookingNotFound
	}
	return resp, nil
}

func (s *bookingService) SubmitInterest(ctx context.Context, req *request.SubmitBookingRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	sub := ledger.Submission{
		ParentName:   req.ParentName,
		Email:        req.Email,
		ChildClass:   req.ChildClass,
		ChildTickets: req.ChildTickets,
		AdultTickets: req.AdultTickets,
		Method:       entity.PaymentMethod(req.PaymentMethod),
	}
	if sub.TotalTickets() < 1 {
		return nil, fmt.Errorf("%w: at least one ticket is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	// The registry is re-read on every submission so a fresh export is
	// picked up without a restart.
	entries, err := s.interest.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load interest registry", zap.Error(err))
		return nil, fmt.Errorf("load interest registry: %w", err)
	}
	var declared *int
	if idx := ledger.FindInterest(entries, req.Email); idx >= 0 {
		declared = &entries[idx].TotalTickets
	}

	updated, rec, err := s.rules.UpsertInterest(records, sub, declared, time.Now())
	if err != nil {
		s.log.Warn("Booking rejected",
			zap.String("email", entity.NormalizeEmail(req.Email)),
			zap.Int("tickets", sub.TotalTickets()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.log.Error("Failed to save bookings", zap.Error(err))
		return nil, fmt.Errorf("save bookings: %w", err)
	}

	s.log.Info("Booking recorded",
		zap.String("email", rec.Email),
		zap.String("payment_code", rec.PaymentCode),
		zap.Int("tickets", rec.TotalTickets),
		zap.Float64("amount", rec.TotalAmount),
	)

	resp := response.BookingToResponse(rec)
	return &resp, nil
}

func (s *bookingService) SubmitWaitlist(ctx context.Context, req *request.SubmitWaitlistRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Submit waitlist validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	sub := ledger.Submission{
		ParentName:   req.ParentName,
		Email:        req.Email,
		ChildClass:   req.ChildClass,
		ChildTickets: req.ChildTickets,
		AdultTickets: req.AdultTickets,
	}
	if sub.TotalTickets() < 1 {
		return nil, fmt.Errorf("%w: at least one ticket is required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	updated, rec, err := s.rules.UpsertWaitlist(records, sub, time.Now())
	if err != nil {
		s.log.Warn("Waitlist entry rejected",
			zap.String("email", entity.NormalizeEmail(req.Email)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.log.Error("Failed to save bookings", zap.Error(err))
		return nil, fmt.Errorf("save bookings: %w", err)
	}

	s.log.Info("Waitlist entry recorded",
		zap.String("email", rec.Email),
		zap.Int("priority", rec.PriorityNumber),
		zap.Int("tickets", rec.TotalTickets),
	)

	resp := response.BookingToResponse(rec)
	return &resp, nil
}
