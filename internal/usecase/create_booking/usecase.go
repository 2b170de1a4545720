package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	providerRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/timeslot"
)

// UseCase use case для создания бронирования на опубликованный слот
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	providerRepo ProviderRepository
	availability AvailabilityInvalidator
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	providerRepo ProviderRepository,
	availability AvailabilityInvalidator,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		providerRepo: providerRepo,
		availability: availability,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Слот расходуется в той же сериализуемой транзакции, в которой создается бронирование,
// поэтому один слот не может быть забронирован дважды
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, provider=%d, slot=%s, package=%d",
		req.UserID, req.ProviderID, req.SlotID, req.PackageID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время в часовом поясе приложения
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Блокируем провайдера, сериализуя изменения его расписания
		if err := uc.providerRepo.Lock(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				uc.logger.Warn("CreateBooking: provider id=%d not found", req.ProviderID)
				return ErrProviderNotFound
			}
			uc.logger.Error("CreateBooking: failed to lock provider id=%d: %v", req.ProviderID, err)
			return fmt.Errorf("%w: failed to lock provider: %v", ErrInternal, err)
		}

		// 3.2. Получаем слот
		slot, err := uc.slotRepo.GetByID(txCtx, req.ProviderID, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot id=%s not found for provider id=%d", req.SlotID, req.ProviderID)
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 3.3. Слот, который уже начался, забронировать нельзя
		if slotStart(slot, now).Before(now) {
			uc.logger.Warn("CreateBooking: slot id=%s starts in the past", req.SlotID)
			return ErrSlotInPast
		}

		// 3.4. Получаем пакет и проверяем, что он доступен в слоте
		pkg, err := uc.providerRepo.GetPackage(txCtx, req.ProviderID, req.PackageID)
		if err != nil {
			if errors.Is(err, providerRepo.ErrPackageNotFound) {
				uc.logger.Warn("CreateBooking: package id=%d not found for provider id=%d", req.PackageID, req.ProviderID)
				return ErrPackageNotFound
			}
			uc.logger.Error("CreateBooking: failed to get package id=%d: %v", req.PackageID, err)
			return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
		}

		if err := validatePackage(pkg, slot); err != nil {
			uc.logger.Warn("CreateBooking: package id=%d cannot be booked in slot id=%s: %v", pkg.ID, slot.ID, err)
			return err
		}

		// 3.5. Расходуем слот
		if err := uc.slotRepo.Delete(txCtx, req.ProviderID, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to consume slot id=%s: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to consume slot: %v", ErrInternal, err)
		}

		// 3.6. Создаем бронирование с денормализацией данных пакета
		booking := &domain.Booking{
			UserID:          req.UserID,
			ProviderID:      req.ProviderID,
			PackageID:       pkg.ID,
			BookingDate:     slot.Date,
			StartTime:       slot.StartTime,
			EndTime:         slot.EndTime,
			Status:          domain.StatusPending,
			PaymentStatus:   domain.PaymentNotPaid,
			PaymentMethod:   req.PaymentMethod,
			Price:           pkg.Price,
			PackageName:     pkg.Name,
			PetName:         req.PetName,
			PetType:         req.PetType,
			PetBreed:        req.PetBreed,
			SpecialRequests: req.SpecialRequests,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 4. Расписание провайдера изменилось
	uc.availability.InvalidateProvider(ctx, req.ProviderID)

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		UserID:          result.UserID,
		ProviderID:      result.ProviderID,
		PackageID:       result.PackageID,
		BookingDate:     result.BookingDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Status:          string(result.Status),
		PaymentStatus:   string(result.PaymentStatus),
		PaymentMethod:   string(result.PaymentMethod),
		PackageName:     result.PackageName,
		Price:           result.Price,
		PetName:         result.PetName,
		PetType:         result.PetType,
		PetBreed:        result.PetBreed,
		SpecialRequests: result.SpecialRequests,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}
