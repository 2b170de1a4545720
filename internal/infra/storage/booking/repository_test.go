package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
)

const cancelQuery = `UPDATE bookings SET status = \$1, .* WHERE id = \$8 AND status IN \(\$9,\$10,\$11\) RETURNING id, user_id, .*`

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewRepository(db), mock
}

func cancellation(at time.Time) domain.Cancellation {
	return domain.Cancellation{
		Reason:          "change of plans",
		CancelledBy:     100,
		CancelledByType: domain.ActorCustomer,
		CancelledAt:     at,
	}
}

func TestRepository_CancelIfStatusIn(t *testing.T) {
	at := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

	t.Run("cancels booking in allowed status", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		rows := sqlmock.NewRows(bookingColumns).AddRow(
			int64(42), int64(100), int64(3), int64(7),
			time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), "10:00", "11:00",
			"cancelled", "paid", "gcash", nil, 5000.0, "Basic cremation",
			"Milo", "dog", nil, nil,
			"change of plans", int64(100), "customer", at,
			at.Add(-10*time.Hour), at,
		)
		mock.ExpectQuery(cancelQuery).
			WithArgs(
				"cancelled", "change of plans", int64(100), "customer", nil, nil, at,
				int64(42), "pending", "confirmed", "in_progress",
			).
			WillReturnRows(rows)

		booking, err := repo.CancelIfStatusIn(context.Background(), 42, domain.CancellableStatuses, cancellation(at))
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCancelled, booking.Status)
		assert.Equal(t, domain.PaymentPaid, booking.PaymentStatus)
		assert.Equal(t, domain.PaymentMethodGCash, booking.PaymentMethod)
		assert.Equal(t, "10:00", booking.StartTime.String())
		require.NotNil(t, booking.CancelledByType)
		assert.Equal(t, domain.ActorCustomer, *booking.CancelledByType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no matching row is a status conflict", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(cancelQuery).WillReturnError(sql.ErrNoRows)

		_, err := repo.CancelIfStatusIn(context.Background(), 42, domain.CancellableStatuses, cancellation(at))

		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second cancel sees zero rows", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(cancelQuery).WillReturnRows(sqlmock.NewRows(bookingColumns))

		_, err := repo.CancelIfStatusIn(context.Background(), 42, domain.CancellableStatuses, cancellation(at))

		assert.ErrorIs(t, err, ErrStatusConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error is not a conflict", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(cancelQuery).WillReturnError(errors.New("connection reset"))

		_, err := repo.CancelIfStatusIn(context.Background(), 42, domain.CancellableStatuses, cancellation(at))

		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NotErrorIs(t, err, ErrStatusConflict)
	})
}
