package paymentgateway

import (
	"context"
	"fmt"
	"math"

	"github.com/razorpay/razorpay-go"
)

// PaymentRefunder часть API платежей Razorpay, выполняющая возвраты
type PaymentRefunder interface {
	Refund(paymentID string, amount int, data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// Client клиент платежного шлюза для возвратов по онлайн платежам
type Client struct {
	payments PaymentRefunder
}

// NewClient создает клиента Razorpay
func NewClient(keyID, keySecret string) *Client {
	rc := razorpay.NewClient(keyID, keySecret)
	return NewClientWithRefunder(rc.Payment)
}

func NewClientWithRefunder(payments PaymentRefunder) *Client {
	return &Client{payments: payments}
}

// Refund запрашивает возврат суммы amount (в основной валюте) по платежу paymentID
// Возвращает ID возврата в шлюзе
func (c *Client) Refund(ctx context.Context, paymentID string, amount float64, notes map[string]string) (string, error) {
	if paymentID == "" {
		return "", ErrMissingPayment
	}

	// Шлюз принимает сумму в минимальных единицах валюты (сентаво)
	minor := int(math.Round(amount * 100))
	if minor <= 0 {
		return "", fmt.Errorf("%w: %.2f", ErrInvalidAmount, amount)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRefundFailed, err)
	}

	data := map[string]interface{}{
		"speed": "normal",
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	resp, err := c.payments.Refund(paymentID, minor, data, nil)
	if err != nil {
		return "", fmt.Errorf("%w: payment=%s: %v", ErrRefundFailed, paymentID, err)
	}

	id, ok := resp["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: refund id is missing", ErrInvalidResponse)
	}

	return id, nil
}
