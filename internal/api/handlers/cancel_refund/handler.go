package cancel_refund

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/bookings/models"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/refunds"
)

const (
	msgInvalidRefundID    = "некорректный ID возврата"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgNotFound           = "возврат не найден"
	msgNotPending         = "отменить можно только ожидающий возврат"
)

type Handler struct {
	service RefundService
	logger  Logger
}

func NewHandler(service RefundService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/refunds/{refundId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	refundID, err := handlers.PathInt64(r, "refundId")
	if err != nil {
		h.logger.Warn("POST /admin/refunds/{id}/cancel - Invalid refund ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRefundID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/refunds/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelRefundRequest
	if r.ContentLength != 0 && !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /admin/refunds/{id}/cancel - Invalid request body: refund_id=%d", refundID)
		return
	}

	refund, err := h.service.Cancel(r.Context(), refundID, actor, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, refunds.ErrAccessDenied):
			h.logger.Warn("POST /admin/refunds/{id}/cancel - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, refunds.ErrRefundNotFound):
			h.logger.Warn("POST /admin/refunds/{id}/cancel - Refund not found: refund_id=%d", refundID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, refunds.ErrInvalidRefundStatus):
			h.logger.Warn("POST /admin/refunds/{id}/cancel - Refund not pending: refund_id=%d", refundID)
			handlers.RespondConflict(w, msgNotPending)

		default:
			h.logger.Error("POST /admin/refunds/{id}/cancel - Failed to cancel refund: refund_id=%d, error=%v", refundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/refunds/{id}/cancel - Refund cancelled: refund_id=%d, admin_id=%d", refundID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainRefund(refund))
}
