package refund

import "errors"

var (
	// ErrRefundNotFound возвращается, когда возврат не найден
	ErrRefundNotFound = errors.New("refund.repository: refund not found")

	// ErrStatusConflict возвращается, когда статус возврата изменился конкурентно
	ErrStatusConflict = errors.New("refund.repository: refund status changed concurrently")

	ErrBuildQuery = errors.New("refund.repository: failed to build query")
	ErrExecQuery  = errors.New("refund.repository: failed to execute query")
	ErrScanRow    = errors.New("refund.repository: failed to scan row")
)
