package provider

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

// Repository репозиторий провайдеров и их пакетов услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория провайдеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Lock блокирует строку провайдера до конца текущей транзакции
// Сериализует изменения слотов одного провайдера
func (r *Repository) Lock(ctx context.Context, providerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id").
		From("service_providers").
		Where(squirrel.Eq{"id": providerID}).
		Suffix("FOR UPDATE").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Lock - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProviderNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Lock - execute query: %v", ErrExecQuery, err)
	}

	return nil
}

// GetPackage получает пакет услуг провайдера
func (r *Repository) GetPackage(ctx context.Context, providerID, packageID int64) (*domain.ServicePackage, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "provider_id", "name", "price", "is_active").
		From("service_packages").
		Where(squirrel.Eq{"id": packageID, "provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - build select query: %v", ErrBuildQuery, err)
	}

	var pkg domain.ServicePackage
	err = executor.QueryRowContext(ctx, query, args...).Scan(&pkg.ID, &pkg.ProviderID, &pkg.Name, &pkg.Price, &pkg.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackage - scan package: %v", ErrScanRow, err)
	}

	return &pkg, nil
}
