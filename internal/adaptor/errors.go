package adaptor

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/gfragi/book-seat-pay/internal/data/ledger"
	"github.com/gfragi/book-seat-pay/internal/data/repository"
	"github.com/gfragi/book-seat-pay/internal/usecase"
	"github.com/gfragi/book-seat-pay/pkg/utils"
)

// respondServiceError maps service errors onto HTTP responses. Business
// rejections keep their message so the caller knows what to change;
// anything unrecognized is a storage or programming fault and stays
// behind a generic 500.
func respondServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	var capErr *ledger.CapacityError
	var limErr *ledger.DeclaredLimitError
	var schemaErr *repository.SchemaError

	switch {
	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" rejected - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrBookingNotFound), errors.Is(err, ledger.ErrCodeNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, ledger.ErrAlreadyPaid):
		log.Warn(operation+" rejected - already paid", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.As(err, &capErr):
		log.Warn(operation+" rejected - capacity", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), map[string]int{
			"requested": capErr.Requested,
			"available": capErr.Available,
		})

	case errors.As(err, &limErr):
		log.Warn(operation+" rejected - declared limit", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), map[string]int{
			"requested": limErr.Requested,
			"declared":  limErr.Declared,
		})

	case errors.Is(err, ledger.ErrWaitlistNotPayable):
		log.Warn(operation+" rejected - waitlist target", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error(), nil)

	case errors.As(err, &schemaErr):
		log.Warn(operation+" rejected - bad table", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
