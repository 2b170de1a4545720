package cancel_booking

import "github.com/m04kA/RainbowPaws-BookingService/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID   int64
	Reason      string       // Причина отмены
	Actor       domain.Actor // Кто отменяет
	Notes       *string      // Комментарий (опционально)
	IPAddress   *string
	ForceRefund bool // Вернуть деньги независимо от статуса оплаты (только администратор)

	// Ограничение области видимости: бронирование чужого пользователя или провайдера
	// считается ненайденным
	OwnerUserID *int64
	ProviderID  *int64
}

// Response результат отмены
// Если бронирование не удалось отменить, Execute возвращает ошибку и nil вместо Response
type Response struct {
	Success          bool
	BookingCancelled bool
	RefundInitiated  bool
	RefundID         *int64
	RefundType       *domain.RefundType
	RefundAmount     float64
	Message          string
	Error            error // Некритичная ошибка после отмены (возврат не создан)

	Booking *domain.Booking
	Refund  *domain.Refund
}
