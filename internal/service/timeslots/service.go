package timeslots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/internal/infra/cache"
	providerRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/provider"
	slotRepo "github.com/m04kA/RainbowPaws-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/clock"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/types"
)

const (
	availabilityKeyPrefix = "availability:"
	generationKeyPrefix   = "availability-gen:"

	// maxAvailabilityDays максимальная длина запрашиваемого периода
	maxAvailabilityDays = 92
)

// Service сервис управления временными слотами провайдеров
// Все изменения выполняются в сериализуемой транзакции под блокировкой строки провайдера
type Service struct {
	slotRepo     SlotRepository
	providerRepo ProviderLocker
	txManager    TransactionManager
	cache        Cache
	cacheTTL     time.Duration
	clock        Clock
	metrics      Metrics
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	providerRepo ProviderLocker,
	txManager TransactionManager,
	slotCache Cache,
	cacheTTL time.Duration,
	clock Clock,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:     slotRepo,
		providerRepo: providerRepo,
		txManager:    txManager,
		cache:        slotCache,
		cacheTTL:     cacheTTL,
		clock:        clock,
		metrics:      metrics,
		logger:       logger,
	}
}

// AddSlot добавляет слот провайдеру
// Ошибки: ErrInvalidTime, ErrPastDate, ErrOverlap, ErrProviderNotFound, ErrAccessDenied
func (s *Service) AddSlot(ctx context.Context, req *AddSlotRequest) (*AddSlotResult, error) {
	s.logger.Info("AddSlot: provider=%d, date=%s, time=%s-%s",
		req.ProviderID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Права доступа
	if err := s.checkAccess(req.ProviderID, req.Actor); err != nil {
		return nil, err
	}

	// 2. Валидация времени
	start, end, err := parseRange(req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Warn("AddSlot: invalid time range %s-%s: %v", req.StartTime, req.EndTime, err)
		s.metrics.RecordSlotOperation("add", "invalid")
		return nil, err
	}

	// 3. Дата не может быть в прошлом (в часовом поясе приложения)
	now := s.clock.Now()
	date := dateIn(req.Date, now.Location())
	if date.IsZero() || date.Before(clock.StartOfDay(now)) {
		s.logger.Warn("AddSlot: date %s is before today %s", date.Format(domain.DateFormat), now.Format(domain.DateFormat))
		s.metrics.RecordSlotOperation("add", "invalid")
		return nil, ErrPastDate
	}

	services := dedupeIDs(req.AvailableServices)

	slot := &domain.TimeSlot{
		ID:                newSlotID(date, now),
		ProviderID:        req.ProviderID,
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		AvailableServices: services,
	}

	var day []*domain.TimeSlot

	// 4. Проверка пересечений и вставка в одной транзакции
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Блокируем провайдера, чтобы параллельные изменения его расписания шли по очереди
		if err := s.providerRepo.Lock(txCtx, req.ProviderID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: AddSlot - lock provider: %v", ErrInternal, err)
		}

		// 4.2. Слоты этой даты
		existing, err := s.slotRepo.ListByDate(txCtx, req.ProviderID, date)
		if err != nil {
			return fmt.Errorf("%w: AddSlot - list slots: %v", ErrInternal, err)
		}

		// 4.3. Проверяем пересечение [start, end) с каждым существующим слотом
		for _, other := range existing {
			if other.Overlaps(start, end) {
				return fmt.Errorf("%w: %s-%s conflicts with %s-%s",
					ErrOverlap, start, end, other.StartTime, other.EndTime)
			}
		}

		// 4.4. Сохраняем; ограничение EXCLUDE в БД страхует от гонок между узлами
		created, err := s.slotRepo.Create(txCtx, slot)
		if err != nil {
			if errors.Is(err, slotRepo.ErrOverlap) {
				return fmt.Errorf("%w: %v", ErrOverlap, err)
			}
			return fmt.Errorf("%w: AddSlot - create slot: %v", ErrInternal, err)
		}

		day = append(existing, created)
		slot = created
		return nil
	})

	if err != nil {
		s.recordFailure("add", err)
		s.logger.Warn("AddSlot: provider=%d, date=%s failed: %v", req.ProviderID, date.Format(domain.DateFormat), err)
		return nil, err
	}

	sortSlots(day)
	s.InvalidateProvider(ctx, req.ProviderID)
	s.metrics.RecordSlotOperation("add", "ok")

	s.logger.Info("AddSlot: created slot id=%s for provider=%d", slot.ID, req.ProviderID)
	return &AddSlotResult{Slot: slot, Day: day}, nil
}

// DeleteSlot удаляет слот провайдера и возвращает оставшиеся слоты той же даты
func (s *Service) DeleteSlot(ctx context.Context, providerID int64, actor domain.Actor, slotID string) (*DeleteSlotResult, error) {
	s.logger.Info("DeleteSlot: provider=%d, slot=%s", providerID, slotID)

	if err := s.checkAccess(providerID, actor); err != nil {
		return nil, err
	}

	if slotID == "" {
		return nil, fmt.Errorf("%w: slotId is required", ErrInvalidInput)
	}

	result := &DeleteSlotResult{}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.providerRepo.Lock(txCtx, providerID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - lock provider: %v", ErrInternal, err)
		}

		slot, err := s.slotRepo.GetByID(txCtx, providerID, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - get slot: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Delete(txCtx, providerID, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			return fmt.Errorf("%w: DeleteSlot - delete slot: %v", ErrInternal, err)
		}

		remaining, err := s.slotRepo.ListByDate(txCtx, providerID, slot.Date)
		if err != nil {
			return fmt.Errorf("%w: DeleteSlot - list slots: %v", ErrInternal, err)
		}

		result.Date = slot.Date
		result.Remaining = remaining
		return nil
	})

	if err != nil {
		s.recordFailure("delete", err)
		s.logger.Warn("DeleteSlot: provider=%d, slot=%s failed: %v", providerID, slotID, err)
		return nil, err
	}

	sortSlots(result.Remaining)
	s.InvalidateProvider(ctx, providerID)
	s.metrics.RecordSlotOperation("delete", "ok")

	s.logger.Info("DeleteSlot: deleted slot id=%s, %d slots left on %s",
		slotID, len(result.Remaining), result.Date.Format(domain.DateFormat))
	return result, nil
}

// DeleteSlotsForDate удаляет все слоты провайдера на дату
// Возвращает количество удаленных слотов (0, если их не было)
func (s *Service) DeleteSlotsForDate(ctx context.Context, providerID int64, actor domain.Actor, date time.Time) (int64, error) {
	s.logger.Info("DeleteSlotsForDate: provider=%d, date=%s", providerID, date.Format(domain.DateFormat))

	if err := s.checkAccess(providerID, actor); err != nil {
		return 0, err
	}

	if date.IsZero() {
		return 0, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	var removed int64

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.providerRepo.Lock(txCtx, providerID); err != nil {
			if errors.Is(err, providerRepo.ErrProviderNotFound) {
				return ErrProviderNotFound
			}
			return fmt.Errorf("%w: DeleteSlotsForDate - lock provider: %v", ErrInternal, err)
		}

		n, err := s.slotRepo.DeleteByDate(txCtx, providerID, date)
		if err != nil {
			return fmt.Errorf("%w: DeleteSlotsForDate - delete slots: %v", ErrInternal, err)
		}

		removed = n
		return nil
	})

	if err != nil {
		s.recordFailure("delete_date", err)
		s.logger.Warn("DeleteSlotsForDate: provider=%d failed: %v", providerID, err)
		return 0, err
	}

	s.InvalidateProvider(ctx, providerID)
	s.metrics.RecordSlotOperation("delete_date", "ok")

	s.logger.Info("DeleteSlotsForDate: removed %d slots for provider=%d on %s",
		removed, providerID, date.Format(domain.DateFormat))
	return removed, nil
}

// GetAvailability возвращает слоты провайдера за период [from, to], сгруппированные по датам
// Результат кэшируется; кэш сбрасывается при любом изменении расписания провайдера
func (s *Service) GetAvailability(ctx context.Context, providerID int64, from, to time.Time) (domain.Availability, error) {
	if providerID <= 0 {
		return nil, fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidInput)
	}
	if to.Sub(from) > maxAvailabilityDays*24*time.Hour {
		return nil, fmt.Errorf("%w: period is longer than %d days", ErrInvalidInput, maxAvailabilityDays)
	}

	// Поколение читается до запроса в БД: если расписание изменится во время чтения,
	// снимок попадет под устаревший ключ и читаться не будет
	gen, cacheable := s.generation(ctx, providerID)
	key := availabilityKey(providerID, gen, from, to)

	if cacheable {
		var cached []*domain.TimeSlot
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return groupByDate(cached), nil
		}
	}

	var slots []*domain.TimeSlot
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = s.slotRepo.ListByRange(txCtx, providerID, from, to)
		return err
	})
	if err != nil {
		s.logger.Error("GetAvailability: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetAvailability - list slots: %v", ErrInternal, err)
	}

	if cacheable {
		if err := s.cache.Save(ctx, key, slots, s.cacheTTL); err != nil {
			s.logger.Warn("GetAvailability: failed to cache availability for provider=%d: %v", providerID, err)
		}
	}

	return groupByDate(slots), nil
}

// generation возвращает текущее поколение кэша провайдера
// Если поколение прочитать не удалось, кэш для запроса не используется
func (s *Service) generation(ctx context.Context, providerID int64) (int64, bool) {
	var gen int64
	err := s.cache.Get(ctx, generationKey(providerID), &gen)
	switch {
	case err == nil:
		return gen, true
	case errors.Is(err, cache.ErrCacheMiss):
		return 0, true
	default:
		s.logger.Warn("GetAvailability: failed to read cache generation for provider=%d: %v", providerID, err)
		return 0, false
	}
}

// InvalidateProvider сбрасывает кэш расписания провайдера
// Ошибки кэша только логируются
// Новое поколение отсекает снимки, прочитанные до изменения, но сохраненные после него
func (s *Service) InvalidateProvider(ctx context.Context, providerID int64) {
	if _, err := s.cache.Incr(ctx, generationKey(providerID)); err != nil {
		s.logger.Warn("InvalidateProvider: failed to bump cache generation for provider=%d: %v", providerID, err)
	}
	if err := s.cache.Clear(ctx, availabilityProviderPrefix(providerID)); err != nil {
		s.logger.Warn("InvalidateProvider: failed to clear cache for provider=%d: %v", providerID, err)
	}
}

func (s *Service) checkAccess(providerID int64, actor domain.Actor) error {
	if providerID <= 0 {
		return fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if actor.IsAdmin() || actor.ManagesProvider(providerID) {
		return nil
	}
	s.logger.Warn("checkAccess: %s=%d does not manage provider=%d", actor.Type, actor.ID, providerID)
	return ErrAccessDenied
}

func (s *Service) recordFailure(operation string, err error) {
	switch {
	case errors.Is(err, ErrOverlap):
		s.metrics.RecordSlotOperation(operation, "overlap")
	case errors.Is(err, ErrSlotNotFound), errors.Is(err, ErrProviderNotFound):
		s.metrics.RecordSlotOperation(operation, "not_found")
	default:
		s.metrics.RecordSlotOperation(operation, "error")
	}
}

// parseRange разбирает "HH:MM" и проверяет, что начало строго раньше конца
func parseRange(startStr, endStr string) (types.TimeString, types.TimeString, error) {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: start %q: %v", ErrInvalidTime, startStr, err)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: end %q: %v", ErrInvalidTime, endStr, err)
	}

	if !start.IsBefore(end) {
		return types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: start %s must be before end %s", ErrInvalidTime, start, end)
	}

	return start, end, nil
}

// newSlotID формирует ID слота: "<дата>-<unix ms>-<8 символов uuid>"
func newSlotID(date, now time.Time) string {
	return fmt.Sprintf("%s-%d-%s", date.Format(domain.DateFormat), now.UnixMilli(), uuid.NewString()[:8])
}

// dateIn переносит календарную дату в указанный часовой пояс
func dateIn(d time.Time, loc *time.Location) time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}

func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return []int64{}
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func sortSlots(slots []*domain.TimeSlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})
}

func groupByDate(slots []*domain.TimeSlot) domain.Availability {
	result := make(domain.Availability)
	for _, slot := range slots {
		key := slot.Date.Format(domain.DateFormat)
		result[key] = append(result[key], slot)
	}
	for _, day := range result {
		sortSlots(day)
	}
	return result
}

func availabilityProviderPrefix(providerID int64) string {
	return fmt.Sprintf("%s%d:", availabilityKeyPrefix, providerID)
}

func availabilityKey(providerID, gen int64, from, to time.Time) string {
	return fmt.Sprintf("%sg%d:%s:%s", availabilityProviderPrefix(providerID), gen,
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))
}

func generationKey(providerID int64) string {
	return fmt.Sprintf("%s%d", generationKeyPrefix, providerID)
}
