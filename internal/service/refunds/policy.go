package refunds

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

// Причины решения о возврате
const (
	ReasonForced        = "refund forced by administrator"
	ReasonNotPaid       = "booking has not been paid"
	ReasonCashPayment   = "cash payments are refunded manually by the provider"
	ReasonPaid          = "payment confirmed"
	ReasonNotCompleted  = "payment is not completed"
	ReasonStatusUnknown = "payment status does not allow an automatic refund"
)

// Eligibility решение о необходимости возврата
type Eligibility struct {
	ShouldRefund bool
	Reason       string
}

// ShouldInitiateRefund решает, нужно ли создавать возврат при отмене бронирования
// Правила проверяются по порядку, срабатывает первое подходящее
func ShouldInitiateRefund(b *domain.Booking, actor domain.ActorType, forceRefund bool) Eligibility {
	if forceRefund {
		return Eligibility{ShouldRefund: true, Reason: ReasonForced}
	}

	if b == nil || b.PaymentStatus == "" || b.PaymentStatus == domain.PaymentNotPaid {
		return Eligibility{ShouldRefund: false, Reason: ReasonNotPaid}
	}

	if b.PaymentMethod == domain.PaymentMethodCash {
		return Eligibility{ShouldRefund: false, Reason: ReasonCashPayment}
	}

	switch b.PaymentStatus {
	case domain.PaymentPaid:
		return Eligibility{ShouldRefund: true, Reason: ReasonPaid}
	case domain.PaymentFailed, domain.PaymentPending:
		return Eligibility{
			ShouldRefund: false,
			Reason:       fmt.Sprintf("%s (status: %s)", ReasonNotCompleted, b.PaymentStatus),
		}
	}

	return Eligibility{ShouldRefund: false, Reason: ReasonStatusUnknown}
}

// CalculateRefundAmount вычисляет сумму возврата
// Для клиента процент зависит от количества часов с момента создания бронирования:
// меньше 24 часов - 100%, от 24 до 48 - 50%, от 48 - 25%
// Для admin, system, provider и прочих инициаторов возвращается полная стоимость
// Результат не округляется, округление выполняет вызывающий код (RoundCurrency)
func CalculateRefundAmount(b *domain.Booking, actor domain.ActorType, now time.Time) float64 {
	if b == nil || b.Price <= 0 || math.IsNaN(b.Price) {
		return 0
	}

	if actor != domain.ActorCustomer {
		return b.Price
	}

	hours := now.Sub(b.CreatedAt).Hours()

	switch {
	case hours < domain.FullRefundWindowHours:
		return b.Price * domain.FullRefundPercent
	case hours < domain.PartialRefundWindowHours:
		return b.Price * domain.PartialRefundPercent
	default:
		return b.Price * domain.LateRefundPercent
	}
}

// RoundCurrency округляет сумму до двух знаков после запятой
func RoundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
