package process_refund

import (
	"errors"
	"net/http"

	"github.com/m04kA/RainbowPaws-BookingService/internal/api/handlers"
	"github.com/m04kA/RainbowPaws-BookingService/internal/api/middleware"
	processRefund "github.com/m04kA/RainbowPaws-BookingService/internal/usecase/process_refund"
)

const (
	msgInvalidRefundID    = "некорректный ID возврата"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
	msgRefundNotFound     = "возврат не найден"
	msgBookingNotFound    = "бронирование возврата не найдено"
	msgRefundNotPending   = "возврат уже обработан или обрабатывается"
	msgGatewayUnavailable = "платежный шлюз недоступен"
)

type Handler struct {
	useCase ProcessRefundUseCase
	logger  Logger
}

func NewHandler(useCase ProcessRefundUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/refunds/{refundId}/process
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	refundID, err := handlers.PathInt64(r, "refundId")
	if err != nil {
		h.logger.Warn("POST /admin/refunds/{id}/process - Invalid refund ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRefundID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/refunds/{id}/process - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ProcessRefundRequest
	if r.ContentLength != 0 && !handlers.DecodeAndValidate(w, r, &req, msgInvalidRequestBody) {
		h.logger.Warn("POST /admin/refunds/{id}/process - Invalid request body: refund_id=%d", refundID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &processRefund.Request{
		RefundID: refundID,
		Actor:    actor,
		Notes:    req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, processRefund.ErrAccessDenied):
			h.logger.Warn("POST /admin/refunds/{id}/process - Access denied: user_id=%d", actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, processRefund.ErrRefundNotFound):
			h.logger.Warn("POST /admin/refunds/{id}/process - Refund not found: refund_id=%d", refundID)
			handlers.RespondNotFound(w, msgRefundNotFound)

		case errors.Is(err, processRefund.ErrBookingNotFound):
			h.logger.Error("POST /admin/refunds/{id}/process - Booking of refund not found: refund_id=%d", refundID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, processRefund.ErrInvalidRefundStatus):
			h.logger.Warn("POST /admin/refunds/{id}/process - Refund not pending: refund_id=%d, error=%v", refundID, err)
			handlers.RespondConflict(w, msgRefundNotPending)

		case errors.Is(err, processRefund.ErrGatewayUnavailable):
			h.logger.Warn("POST /admin/refunds/{id}/process - Gateway unavailable: refund_id=%d", refundID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgGatewayUnavailable)

		default:
			h.logger.Error("POST /admin/refunds/{id}/process - Failed to process refund: refund_id=%d, error=%v", refundID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/refunds/{id}/process - Refund processed: refund_id=%d, status=%s, admin_id=%d",
		refundID, result.Refund.Status, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
