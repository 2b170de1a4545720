package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/RainbowPaws-BookingService/internal/domain"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/dbmetrics"
	"github.com/m04kA/RainbowPaws-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий контактных данных пользователей
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetContact получает контактные данные пользователя для уведомлений
func (r *Repository) GetContact(ctx context.Context, userID int64) (*domain.UserContact, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "first_name", "last_name", "email", "phone").
		From("users").
		Where(squirrel.Eq{"id": userID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetContact - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.UserContact
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetContact - scan user: %v", ErrScanRow, err)
	}

	return &u, nil
}
