package process_refund

import "github.com/m04kA/RainbowPaws-BookingService/internal/domain"

// Request модель запроса на обработку возврата
type Request struct {
	RefundID int64
	Actor    domain.Actor
	Notes    *string // Комментарий администратора (опционально)
}

// Response итог обработки
// Refund.Status = processed или failed; отказ шлюза не является ошибкой usecase
type Response struct {
	Refund  *domain.Refund
	Booking *domain.Booking
}
