package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/RainbowPaws-BookingService/internal/service/refunds"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

const (
	msgCancelled      = "Booking cancelled successfully."
	msgRefundStarted  = "A refund of %.2f has been initiated and will be returned to your original payment method."
	msgRefundManual   = "A refund of %.2f has been recorded and will be handled manually by our team."
	msgNoRefund       = "No refund was initiated: %s."
	msgNothingDue     = "No refund is due for this booking."
	msgRefundDegraded = "The refund could not be initiated automatically; our team will contact you."
)

// UseCase use case отмены бронирования с расчетом и созданием возврата
type UseCase struct {
	bookingRepo  BookingRepository
	refundRepo   RefundRepository
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	refundRepo RefundRepository,
	notifier Notifier,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		refundRepo:   refundRepo,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute отменяет бронирование
// Ошибки шагов 1-3 фатальны. После того как отмена зафиксирована, сбои возврата
// и уведомлений только ухудшают сообщение результата
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d, actor=%d (%s), forceRefund=%t",
		req.BookingID, req.Actor.ID, req.Actor.Type, req.ForceRefund)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	// 1. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	if !inScope(booking, req) {
		uc.logger.Warn("CancelBooking: booking id=%d is outside of caller scope (actor=%d)", req.BookingID, req.Actor.ID)
		return nil, ErrBookingNotFound
	}

	// 2. Проверяем, что из текущего статуса возможна отмена
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d has status=%s", req.BookingID, booking.Status)
		return nil, &StatusError{Current: booking.Status, Allowed: domain.CancellableStatuses}
	}

	// 3. Отменяем с проверкой статуса в том же UPDATE
	now := uc.timeProvider.Now()
	cancelled, err := uc.bookingRepo.CancelIfStatusIn(ctx, req.BookingID, domain.CancellableStatuses, domain.Cancellation{
		Reason:          strings.TrimSpace(req.Reason),
		CancelledBy:     req.Actor.ID,
		CancelledByType: req.Actor.Type,
		Notes:           req.Notes,
		IPAddress:       req.IPAddress,
		CancelledAt:     now,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			uc.logger.Warn("CancelBooking: booking id=%d changed status concurrently", req.BookingID)
			return nil, ErrCancellationFailed
		}
		uc.logger.Error("CancelBooking: failed to cancel booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
	}

	resp := &Response{
		Success:          true,
		BookingCancelled: true,
		Booking:          cancelled,
	}

	// 4-6. Возврат средств
	uc.initiateRefund(ctx, req, booking, now, resp)

	// 7. Уведомление о возврате
	if resp.Refund != nil {
		if err := uc.notifier.RefundInitiated(ctx, cancelled, resp.Refund); err != nil {
			uc.logger.Warn("CancelBooking: refund notification for booking id=%d failed: %v", req.BookingID, err)
		}
	}

	// 8. Уведомление об отмене
	if err := uc.notifier.BookingStatusChanged(ctx, cancelled); err != nil {
		uc.logger.Warn("CancelBooking: status notification for booking id=%d failed: %v", req.BookingID, err)
	}

	uc.metrics.RecordCancellation(string(req.Actor.Type), resp.RefundInitiated)

	uc.logger.Info("CancelBooking: booking id=%d cancelled, refundInitiated=%t, amount=%.2f",
		req.BookingID, resp.RefundInitiated, resp.RefundAmount)
	return resp, nil
}

// initiateRefund заполняет resp результатом шагов 4-6
func (uc *UseCase) initiateRefund(
	ctx context.Context,
	req *Request,
	booking *domain.Booking,
	now time.Time,
	resp *Response,
) {
	// 4. Проверяем, положен ли возврат
	eligibility := refunds.ShouldInitiateRefund(booking, req.Actor.Type, req.ForceRefund)
	if !eligibility.ShouldRefund {
		uc.logger.Info("CancelBooking: no refund for booking id=%d: %s", booking.ID, eligibility.Reason)
		resp.Message = msgCancelled + " " + fmt.Sprintf(msgNoRefund, eligibility.Reason)
		return
	}

	// 5. Рассчитываем сумму
	amount := refunds.RoundCurrency(refunds.CalculateRefundAmount(booking, req.Actor.Type, now))
	if amount <= 0 {
		uc.logger.Info("CancelBooking: refund amount for booking id=%d is zero", booking.ID)
		resp.Message = msgCancelled + " " + msgNothingDue
		return
	}

	// 6. Создаем запись о возврате
	refundType := domain.RefundTypeFor(booking.PaymentMethod)
	refund, err := uc.refundRepo.Create(ctx, &domain.Refund{
		BookingID:       booking.ID,
		UserID:          booking.UserID,
		Amount:          amount,
		Reason:          domain.RefundReasonFor(req.Actor.Type),
		Description:     "booking cancellation: " + strings.TrimSpace(req.Reason),
		Status:          domain.RefundPending,
		RefundType:      refundType,
		PaymentMethod:   booking.PaymentMethod,
		InitiatedBy:     req.Actor.ID,
		InitiatedByType: req.Actor.Type,
		Notes:           req.Notes,
	})
	if err != nil {
		uc.logger.Error("CancelBooking: failed to create refund for booking id=%d: %v", booking.ID, err)
		resp.Message = msgCancelled + " " + msgRefundDegraded
		resp.Error = fmt.Errorf("%w: %v", ErrRefundProcessing, err)
		return
	}

	uc.metrics.RecordRefundInitiated(string(refundType), amount)

	resp.RefundInitiated = true
	resp.RefundID = ptr.Ptr(refund.ID)
	resp.RefundType = ptr.Ptr(refundType)
	resp.RefundAmount = amount
	resp.Refund = refund

	if refundType == domain.RefundTypeManual {
		resp.Message = msgCancelled + " " + fmt.Sprintf(msgRefundManual, amount)
	} else {
		resp.Message = msgCancelled + " " + fmt.Sprintf(msgRefundStarted, amount)
	}
}
