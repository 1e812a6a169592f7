package adaptor

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/dto/request"
	"github.com/gfragi/book-seat-pay/internal/usecase"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// maxRestoreBytes caps restore uploads; the real table is a few kilobytes.
const maxRestoreBytes = 5 << 20

type AdminHandler struct {
	service usecase.AdminService
	log     *zap.Logger
}

func NewAdminHandler(service usecase.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// ListBookings handles GET /api/admin/bookings?status=&category=&search=
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := request.ListBookingsFilter{
		Status:   query.Get("status"),
		Category: query.Get("category"),
		Search:   query.Get("search"),
	}

	bookings, err := h.service.ListBookings(r.Context(), &filter)
	if err != nil {
		respondServiceError(h.log, w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetSummary handles GET /api/admin/summary
func (h *AdminHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "get summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// MarkPaid handles POST /api/admin/payments/mark-paid
func (h *AdminHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var req request.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	booking, err := h.service.MarkPaid(r.Context(), &req)
	if err != nil {
		respondServiceError(h.log, w, err, "mark paid")
		return
	}

	utils.ResponseSuccess(w, "payment confirmed", booking)
}

// ExportBookings handles GET /api/admin/export, answering with the raw
// CSV file rather than the JSON envelope.
func (h *AdminHandler) ExportBookings(w http.ResponseWriter, r *http.Request) {
	content, filename, err := h.service.ExportCSV(r.Context())
	if err != nil {
		respondServiceError(h.log, w, err, "export bookings")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// Restore handles POST /api/admin/restore. The replacement table arrives
// as a multipart upload under the "file" field.
func (h *AdminHandler) Restore(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRestoreBytes)
	if err := r.ParseMultipartForm(maxRestoreBytes); err != nil {
		utils.ResponseBadRequest(w, "Expected a multipart upload with a 'file' field", nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		utils.ResponseBadRequest(w, "Missing 'file' field", nil)
		return
	}
	defer file.Close()

	result, err := h.service.Restore(r.Context(), file)
	if err != nil {
		respondServiceError(h.log, w, err, "restore bookings")
		return
	}

	utils.ResponseSuccess(w, "booking table restored", result)
}
