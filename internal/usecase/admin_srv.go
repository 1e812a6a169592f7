package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
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

// utf8BOM goes in front of exports so spreadsheet apps detect the
// encoding and render Greek names correctly.
const utf8BOM = "\uFEFF"

type AdminService interface {
	ListBookings(ctx context.Context, filter *request.ListBookingsFilter) ([]response.BookingResponse, error)
	MarkPaid(ctx context.Context, req *request.MarkPaidRequest) (*response.BookingResponse, error)
	Summary(ctx context.Context) (*response.SummaryResponse, error)
	ExportCSV(ctx context.Context) ([]byte, string, error)
	Restore(ctx context.Context, upload io.Reader) (*response.RestoreResponse, error)
}

type adminService struct {
	store repository.BookingStore
	rules *ledger.Ledger
	mu    *sync.Mutex
	log   *zap.Logger
}

func NewAdminService(store repository.BookingStore, rules *ledger.Ledger, mu *sync.Mutex, log *zap.Logger) AdminService {
	return &adminService{
		store: store,
		rules: rules,
		mu:    mu,
		log:   log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) ListBookings(ctx context.Context, filter *request.ListBookingsFilter) ([]response.BookingResponse, error) {
	// Validate filter
	if errs := utils.ValidateStruct(filter); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	filtered := make([]entity.Booking, 0, len(records))
	for _, r := range records {
		if filter.Status != "" && r.PaymentStatus != entity.PaymentStatus(filter.Status) {
			continue
		}
		if filter.Category != "" && r.Category != entity.Category(filter.Category) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(r.ParentName), search) &&
			!strings.Contains(strings.ToLower(r.Email), search) &&
			!strings.Contains(strings.ToLower(r.PaymentCode), search) {
			continue
		}
		filtered = append(filtered, r)
	}

	// Newest first; ties keep table order.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	return response.BookingsToResponse(filtered), nil
}

func (s *adminService) MarkPaid(ctx context.Context, req *request.MarkPaidRequest) (*response.BookingResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrValidation, utils.FormatValidationErrors(errs))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	updated, rec, err := ledger.MarkPaid(records, req.PaymentCode)
	if err != nil {
		s.log.Warn("Mark paid rejected",
			zap.String("payment_code", req.PaymentCode),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.log.Error("Failed to save bookings", zap.Error(err))
		return nil, fmt.Errorf("save bookings: %w", err)
	}

	s.log.Info("Payment confirmed",
		zap.String("payment_code", rec.PaymentCode),
		zap.String("email", rec.Email),
		zap.Float64("amount", rec.TotalAmount),
	)

	resp := response.BookingToResponse(rec)
	return &resp, nil
}

func (s *adminService) Summary(ctx context.Context) (*response.SummaryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	summary := &response.SummaryResponse{
		Capacity:       s.rules.Capacity(),
		SeatsUsed:      ledger.SeatsUsed(records),
		SeatsAvailable: s.rules.Available(records),
	}
	for _, r := range records {
		if r.Category == entity.CategoryWaitlist {
			summary.WaitlistEntries++
			summary.WaitlistTickets += r.TotalTickets
			continue
		}

		summary.TotalBookings++
		summary.AmountExpected += r.TotalAmount
		switch r.PaymentStatus {
		case entity.PaymentStatusPaid:
			summary.PaidBookings++
			summary.AmountCollected += r.TotalAmount
		default:
			summary.PendingBookings++
		}
	}
	return summary, nil
}

func (s *adminService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.store.Load(ctx)
	if err != nil {
		s.log.Error("Failed to load bookings", zap.Error(err))
		return nil, "", fmt.Errorf("load bookings: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	if err := repository.WriteTable(&buf, records); err != nil {
		return nil, "", fmt.Errorf("encode bookings: %w", err)
	}

	filename := fmt.Sprintf("payments-%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *adminService) Restore(ctx context.Context, upload io.Reader) (*response.RestoreResponse, error) {
	// Parse before taking the lock; a malformed upload never touches the
	// stored table.
	records, err := repository.ReadTable(upload)
	if err != nil {
		s.log.Warn("Restore upload rejected", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ref, err := s.store.Replace(ctx, records)
	if err != nil {
		s.log.Error("Failed to replace bookings", zap.Error(err))
		return nil, fmt.Errorf("replace bookings: %w", err)
	}

	s.log.Info("Booking table restored",
		zap.String("archived_as", ref),
		zap.Int("records", len(records)),
	)

	return &response.RestoreResponse{ArchivedAs: ref, Records: len(records)}, nil
}
