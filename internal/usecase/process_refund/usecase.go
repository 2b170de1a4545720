package process_refund

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/booking"
	refundRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/refund"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/ptr"
)

// UseCase use case обработки возврата администратором
type UseCase struct {
	refundRepo   RefundRepository
	bookingRepo  BookingRepository
	gateway      PaymentGateway // nil, если шлюз не настроен
	notifier     Notifier
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	refundRepo RefundRepository,
	bookingRepo BookingRepository,
	gateway PaymentGateway,
	notifier Notifier,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		refundRepo:   refundRepo,
		bookingRepo:  bookingRepo,
		gateway:      gateway,
		notifier:     notifier,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// outcome результат попытки возврата
type outcome struct {
	status          domain.RefundStatus
	notes           string
	gatewayRefundID *string
}

// Execute переводит возврат pending -> processing -> processed | failed
// Возврат, застрявший в processing после успешного вызова шлюза, повторный вызов переводит в processed
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ProcessRefund: refund=%d by actor=%d (%s)", req.RefundID, req.Actor.ID, req.Actor.Type)

	// 1. Только администратор
	if !req.Actor.IsAdmin() {
		uc.logger.Warn("ProcessRefund: actor=%d is not an administrator", req.Actor.ID)
		return nil, ErrAccessDenied
	}

	// 2. Получаем возврат
	refund, err := uc.refundRepo.GetByID(ctx, req.RefundID)
	if err != nil {
		if errors.Is(err, refundRepo.ErrRefundNotFound) {
			uc.logger.Warn("ProcessRefund: refund id=%d not found", req.RefundID)
			return nil, ErrRefundNotFound
		}
		uc.logger.Error("ProcessRefund: failed to get refund id=%d: %v", req.RefundID, err)
		return nil, fmt.Errorf("%w: failed to get refund: %v", ErrInternal, err)
	}

	// Возврат в processing с ID из шлюза: деньги уже ушли, осталось зафиксировать итог
	resuming := refund.Status == domain.RefundProcessing && ptr.Value(refund.GatewayRefundID) != ""
	if refund.Status != domain.RefundPending && !resuming {
		uc.logger.Warn("ProcessRefund: refund id=%d has status=%s", refund.ID, refund.Status)
		return nil, fmt.Errorf("%w: current status is %q", ErrInvalidRefundStatus, refund.Status)
	}

	// 3. Получаем бронирование (нужна ссылка на платеж)
	booking, err := uc.bookingRepo.GetByID(ctx, refund.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Error("ProcessRefund: booking id=%d of refund id=%d not found", refund.BookingID, refund.ID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("ProcessRefund: failed to get booking id=%d: %v", refund.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	var result outcome
	if resuming {
		uc.logger.Info("ProcessRefund: refund id=%d already refunded by gateway (id=%s), saving outcome",
			refund.ID, *refund.GatewayRefundID)
		result = outcome{
			status:          domain.RefundProcessed,
			notes:           "refunded through payment gateway, outcome saved on retry",
			gatewayRefundID: refund.GatewayRefundID,
		}
	} else {
		if refund.RefundType == domain.RefundTypeAutomatic && uc.gateway == nil {
			uc.logger.Warn("ProcessRefund: refund id=%d is automatic but the gateway is not configured", refund.ID)
			return nil, ErrGatewayUnavailable
		}

		// 4. Захватываем возврат: pending -> processing
		if _, err := uc.refundRepo.TransitionStatus(ctx, refund.ID, refundRepo.StatusUpdate{
			From: domain.RefundPending,
			To:   domain.RefundProcessing,
		}); err != nil {
			if errors.Is(err, refundRepo.ErrStatusConflict) {
				uc.logger.Warn("ProcessRefund: refund id=%d was taken by another request", refund.ID)
				return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidRefundStatus)
			}
			uc.logger.Error("ProcessRefund: failed to mark refund id=%d as processing: %v", refund.ID, err)
			return nil, fmt.Errorf("%w: failed to start processing: %v", ErrInternal, err)
		}

		// 5. Выполняем возврат
		result = uc.perform(ctx, req, refund, booking)

		// ID из шлюза сохраняем сразу: если итог не запишется, повторный запрос его завершит
		if result.gatewayRefundID != nil {
			if _, err := uc.refundRepo.TransitionStatus(ctx, refund.ID, refundRepo.StatusUpdate{
				From:            domain.RefundProcessing,
				To:              domain.RefundProcessing,
				GatewayRefundID: result.gatewayRefundID,
			}); err != nil {
				uc.logger.Error("ProcessRefund: failed to save gateway id=%s for refund id=%d: %v",
					*result.gatewayRefundID, refund.ID, err)
			}
		}
	}

	// 6. Фиксируем итог; успешный возврат меняет статус оплаты бронирования
	var final *domain.Refund
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		upd := refundRepo.StatusUpdate{
			From:            domain.RefundProcessing,
			To:              result.status,
			Notes:           ptr.Ptr(result.notes),
			GatewayRefundID: result.gatewayRefundID,
		}
		if result.status == domain.RefundProcessed {
			upd.ProcessedAt = ptr.Ptr(uc.timeProvider.Now())
		}

		updated, err := uc.refundRepo.TransitionStatus(txCtx, refund.ID, upd)
		if err != nil {
			return fmt.Errorf("failed to save refund outcome: %w", err)
		}

		if result.status == domain.RefundProcessed {
			if err := uc.bookingRepo.UpdatePaymentStatus(txCtx, booking.ID, domain.PaymentRefunded); err != nil {
				return fmt.Errorf("failed to mark booking as refunded: %w", err)
			}
			booking.PaymentStatus = domain.PaymentRefunded
		}

		final = updated
		return nil
	})
	if err != nil {
		uc.logger.Error("ProcessRefund: refund id=%d finished as %s (gateway id=%s) but was not saved: %v",
			refund.ID, result.status, ptr.Value(result.gatewayRefundID), err)
		if errors.Is(err, refundRepo.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidRefundStatus)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.RecordRefundOutcome(string(final.Status))

	// 7. Уведомляем клиента
	if err := uc.notifier.RefundProcessed(ctx, booking, final); err != nil {
		uc.logger.Warn("ProcessRefund: notification for refund id=%d failed: %v", final.ID, err)
	}

	uc.logger.Info("ProcessRefund: refund id=%d finished with status=%s", final.ID, final.Status)
	return &Response{Refund: final, Booking: booking}, nil
}

// perform выполняет возврат вручную или через шлюз
// Ошибка шлюза не прерывает обработку: возврат переходит в failed с причиной в заметках
func (uc *UseCase) perform(ctx context.Context, req *Request, refund *domain.Refund, booking *domain.Booking) outcome {
	if refund.RefundType != domain.RefundTypeAutomatic {
		notes := fmt.Sprintf("processed manually by admin #%d", req.Actor.ID)
		if req.Notes != nil && *req.Notes != "" {
			notes += ": " + *req.Notes
		}
		return outcome{status: domain.RefundProcessed, notes: notes}
	}

	paymentID := ptr.Value(booking.PaymentReference)
	if paymentID == "" {
		uc.logger.Warn("ProcessRefund: booking id=%d has no gateway payment reference", booking.ID)
		return outcome{status: domain.RefundFailed, notes: "gateway refund failed: booking has no payment reference"}
	}

	gatewayID, err := uc.gateway.Refund(ctx, paymentID, refund.Amount, map[string]string{
		"booking_id": strconv.FormatInt(booking.ID, 10),
		"refund_id":  strconv.FormatInt(refund.ID, 10),
	})
	if err != nil {
		uc.logger.Warn("ProcessRefund: gateway refund for refund id=%d failed: %v", refund.ID, err)
		return outcome{status: domain.RefundFailed, notes: "gateway refund failed: " + err.Error()}
	}

	notes := "refunded through payment gateway"
	if req.Notes != nil && *req.Notes != "" {
		notes += ": " + *req.Notes
	}
	return outcome{status: domain.RefundProcessed, notes: notes, gatewayRefundID: ptr.Ptr(gatewayID)}
}
