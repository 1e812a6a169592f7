package wire

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/adaptor"
	"github.com/gfragi/book-seat-pay/pkg/middleware"
)

func wireAdmin(r chi.Router, adminHandler *adaptor.AdminHandler, adminKeyHash string, log *zap.Logger) {
	// ==================== ADMIN ROUTES (require X-Admin-Key) ====================
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.AdminKey(adminKeyHash, log))

		// GET /api/admin/bookings - full table with optional filters
		r.Get("/bookings", adminHandler.ListBookings)

		// GET /api/admin/summary - reconciliation numbers
		r.Get("/summary", adminHandler.GetSummary)

		// POST /api/admin/payments/mark-paid - confirm a payment code
		r.Post("/payments/mark-paid", adminHandler.MarkPaid)

		// GET /api/admin/export - download the table as CSV
		r.Get("/export", adminHandler.ExportBookings)

		// POST /api/admin/restore - replace the table from an upload
		r.Post("/restore", adminHandler.Restore)
	})
}
