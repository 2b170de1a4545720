package refund

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/psqlbuilder"
)

var refundColumns = []string{
	"id",
	"booking_id",
	"user_id",
	"amount",
	"reason",
	"description",
	"status",
	"refund_type",
	"payment_method",
	"initiated_by",
	"initiated_by_type",
	"notes",
	"gateway_refund_id",
	"processed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий возвратов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория возвратов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую запись о возврате
// Записи по одному бронированию не дедуплицируются: каждая попытка хранится отдельно
func (r *Repository) Create(ctx context.Context, refund *domain.Refund) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var paymentMethod *string
	if refund.PaymentMethod != "" {
		pm := string(refund.PaymentMethod)
		paymentMethod = &pm
	}

	query, args, err := psqlbuilder.Insert("refunds").
		Columns(
			"booking_id",
			"user_id",
			"amount",
			"reason",
			"description",
			"status",
			"refund_type",
			"payment_method",
			"initiated_by",
			"initiated_by_type",
			"notes",
		).
		Values(
			refund.BookingID,
			refund.UserID,
			refund.Amount,
			refund.Reason,
			refund.Description,
			refund.Status,
			refund.RefundType,
			paymentMethod,
			refund.InitiatedBy,
			refund.InitiatedByType,
			refund.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&refund.ID, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	refund.CreatedAt = createdAt.Time
	refund.UpdatedAt = updatedAt.Time

	return refund, nil
}

// GetByID получает возврат по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	refund, err := scanRefund(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRefundNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan refund: %v", ErrScanRow, err)
	}

	return refund, nil
}

// ListByBooking возвращает все возвраты бронирования, новые первыми
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(refundColumns...).
		From("refunds").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	refunds := make([]*domain.Refund, 0)
	for rows.Next() {
		refund, err := scanRefund(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		refunds = append(refunds, refund)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return refunds, nil
}

// StatusUpdate параметры перехода статуса возврата
type StatusUpdate struct {
	From            domain.RefundStatus
	To              domain.RefundStatus
	Notes           *string
	GatewayRefundID *string
	ProcessedAt     *time.Time
}

// TransitionStatus переводит возврат из статуса From в To
// Если статус уже изменился, возвращает ErrStatusConflict
func (r *Repository) TransitionStatus(ctx context.Context, id int64, upd StatusUpdate) (*domain.Refund, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("refunds").
		Set("status", upd.To).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": upd.From}).
		Suffix("RETURNING " + strings.Join(refundColumns, ", "))

	if upd.Notes != nil {
		updateBuilder = updateBuilder.Set("notes", *upd.Notes)
	}
	if upd.GatewayRefundID != nil {
		updateBuilder = updateBuilder.Set("gateway_refund_id", *upd.GatewayRefundID)
	}
	if upd.ProcessedAt != nil {
		updateBuilder = updateBuilder.Set("processed_at", *upd.ProcessedAt)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	refund, err := scanRefund(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatusConflict
	}
	if err != nil {
		return nil, fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	return refund, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRefund(row rowScanner) (*domain.Refund, error) {
	var (
		refund               domain.Refund
		paymentMethod        sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&refund.ID,
		&refund.BookingID,
		&refund.UserID,
		&refund.Amount,
		&refund.Reason,
		&refund.Description,
		&refund.Status,
		&refund.RefundType,
		&paymentMethod,
		&refund.InitiatedBy,
		&refund.InitiatedByType,
		&refund.Notes,
		&refund.GatewayRefundID,
		&refund.ProcessedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	refund.PaymentMethod = domain.PaymentMethod(paymentMethod.String)
	refund.CreatedAt = createdAt.Time
	refund.UpdatedAt = updatedAt.Time

	return &refund, nil
}
