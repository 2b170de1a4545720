package paymentgateway

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefunder struct {
	paymentID string
	amount    int
	data      map[string]interface{}
	resp      map[string]interface{}
	err       error
}

func (f *fakeRefunder) Refund(paymentID string, amount int, data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.paymentID = paymentID
	f.amount = amount
	f.data = data
	return f.resp, f.err
}

func TestClient_Refund(t *testing.T) {
	f := &fakeRefunder{resp: map[string]interface{}{"id": "rfnd_123", "status": "processed"}}
	c := NewClientWithRefunder(f)

	id, err := c.Refund(context.Background(), "pay_abc", 2500.5, map[string]string{"refund_id": "9"})

	require.NoError(t, err)
	assert.Equal(t, "rfnd_123", id)
	assert.Equal(t, "pay_abc", f.paymentID)
	assert.Equal(t, 250050, f.amount)
	assert.Equal(t, map[string]string{"refund_id": "9"}, f.data["notes"])
}

func TestClient_RefundErrors(t *testing.T) {
	tests := []struct {
		name      string
		refunder  *fakeRefunder
		paymentID string
		amount    float64
		wantErr   error
	}{
		{"empty payment id", &fakeRefunder{}, "", 100, ErrMissingPayment},
		{"zero amount", &fakeRefunder{}, "pay_abc", 0, ErrInvalidAmount},
		{"gateway error", &fakeRefunder{err: errors.New("BAD_REQUEST_ERROR")}, "pay_abc", 100, ErrRefundFailed},
		{"missing refund id", &fakeRefunder{resp: map[string]interface{}{}}, "pay_abc", 100, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClientWithRefunder(tt.refunder).Refund(context.Background(), tt.paymentID, tt.amount, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
