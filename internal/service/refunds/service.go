package refunds

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/booking"
	refundRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/refund"
)

// Service сервис для чтения и администрирования возвратов
type Service struct {
	refundRepo  RefundRepository
	bookingRepo BookingRepository
	metrics     Metrics
	logger      Logger
}

// NewService создает новый экземпляр сервиса возвратов
func NewService(refundRepo RefundRepository, bookingRepo BookingRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		refundRepo:  refundRepo,
		bookingRepo: bookingRepo,
		metrics:     metrics,
		logger:      logger,
	}
}

// ListByBooking возвращает историю возвратов бронирования, новые первыми
// Доступно владельцу бронирования, сотрудникам провайдера и администраторам
func (s *Service) ListByBooking(ctx context.Context, bookingID int64, actor domain.Actor) ([]*domain.Refund, error) {
	s.logger.Info("ListByBooking: fetching refunds for booking id=%d by %s=%d", bookingID, actor.Type, actor.ID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ListByBooking: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ListByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - get booking: %v", ErrInternal, err)
	}

	if !actor.CanView(booking) {
		s.logger.Warn("ListByBooking: access denied for %s=%d to booking id=%d", actor.Type, actor.ID, bookingID)
		return nil, ErrAccessDenied
	}

	refunds, err := s.refundRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		s.logger.Error("ListByBooking: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: ListByBooking - list refunds: %v", ErrInternal, err)
	}

	s.logger.Info("ListByBooking: fetched %d refunds for booking id=%d", len(refunds), bookingID)
	return refunds, nil
}

// Cancel отменяет ожидающий возврат (pending -> cancelled)
func (s *Service) Cancel(ctx context.Context, refundID int64, actor domain.Actor, notes *string) (*domain.Refund, error) {
	s.logger.Info("Cancel: cancelling refund id=%d by %s=%d", refundID, actor.Type, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("Cancel: %s=%d is not allowed to cancel refunds", actor.Type, actor.ID)
		return nil, ErrAccessDenied
	}

	current, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		if errors.Is(err, refundRepo.ErrRefundNotFound) {
			s.logger.Warn("Cancel: refund id=%d not found", refundID)
			return nil, ErrRefundNotFound
		}
		s.logger.Error("Cancel: repository error for refund id=%d: %v", refundID, err)
		return nil, fmt.Errorf("%w: Cancel - get refund: %v", ErrInternal, err)
	}

	if current.Status != domain.RefundPending {
		s.logger.Warn("Cancel: refund id=%d has status=%s", refundID, current.Status)
		return nil, fmt.Errorf("%w: current status is %s", ErrInvalidRefundStatus, current.Status)
	}

	updated, err := s.refundRepo.TransitionStatus(ctx, refundID, refundRepo.StatusUpdate{
		From:  domain.RefundPending,
		To:    domain.RefundCancelled,
		Notes: notes,
	})
	if err != nil {
		if errors.Is(err, refundRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: refund id=%d changed status concurrently", refundID)
			return nil, ErrInvalidRefundStatus
		}
		s.logger.Error("Cancel: failed to update refund id=%d: %v", refundID, err)
		return nil, fmt.Errorf("%w: Cancel - update refund: %v", ErrInternal, err)
	}

	s.metrics.RecordRefundOutcome(string(domain.RefundCancelled))
	s.logger.Info("Cancel: refund id=%d cancelled", refundID)
	return updated, nil
}
