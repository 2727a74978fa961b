package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/PetCare-BookingService/internal/domain"
	"github.com/m04kA/PetCare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PetCare-BookingService/pkg/psqlbuilder"
)

// Repository каталог услуг, специалистов и пакетов (только чтение)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetService получает активную услугу по ID
// Категория подтягивается LEFT JOIN и может отсутствовать
func (r *Repository) GetService(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.business_id",
		"s.name",
		"c.name",
		"s.price",
		"s.duration_minutes",
		"s.is_active",
	).
		From("services s").
		LeftJoin("categories c ON c.id = s.category_id").
		Where(squirrel.Eq{"s.id": id, "s.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - build select query: %v", ErrBuildQuery, err)
	}

	var (
		service      domain.Service
		categoryName sql.NullString
		duration     sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.BusinessID,
		&service.Name,
		&categoryName,
		&service.Price,
		&duration,
		&service.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetService - scan service: %v", ErrScanRow, err)
	}

	if categoryName.Valid {
		service.CategoryName = &categoryName.String
	}
	service.DurationMinutes = domain.DefaultDurationMinutes
	if duration.Valid && duration.Int64 > 0 {
		service.DurationMinutes = int(duration.Int64)
	}

	return &service, nil
}

func providersQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"p.id",
		"p.business_id",
		"b.owner_id",
		"p.name",
		"p.is_active",
	).
		From("providers p").
		Join("businesses b ON b.id = p.business_id")
}

// GetProvidersByBusiness получает активных специалистов бизнеса
func (r *Repository) GetProvidersByBusiness(ctx context.Context, businessID int64) ([]domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := providersQuery().
		Where(squirrel.Eq{"p.business_id": businessID, "p.is_active": true}).
		OrderBy("p.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProvidersByBusiness - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetProvidersByBusiness - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	providers := make([]domain.Provider, 0)
	for rows.Next() {
		var p domain.Provider
		if err := rows.Scan(&p.ID, &p.BusinessID, &p.OwnerID, &p.Name, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%w: GetProvidersByBusiness - scan row: %v", ErrScanRow, err)
		}
		providers = append(providers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetProvidersByBusiness - rows error: %v", ErrScanRow, err)
	}

	return providers, nil
}

// GetProviderByID получает специалиста вместе с владельцем бизнеса
func (r *Repository) GetProviderByID(ctx context.Context, id int64) (*domain.Provider, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := providersQuery().
		Where(squirrel.Eq{"p.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.Provider
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.BusinessID, &p.OwnerID, &p.Name, &p.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetProviderByID - scan provider: %v", ErrScanRow, err)
	}

	return &p, nil
}

// GetPackagesByService получает активные пакеты услуги
func (r *Repository) GetPackagesByService(ctx context.Context, serviceID int64) ([]domain.Package, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"service_id",
		"name",
		"description",
		"price",
		"total_sessions",
		"discount_percentage",
		"is_active",
	).
		From("packages").
		Where(squirrel.Eq{"service_id": serviceID, "is_active": true}).
		OrderBy("price ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackagesByService - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackagesByService - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	packages := make([]domain.Package, 0)
	for rows.Next() {
		var p domain.Package
		if err := rows.Scan(
			&p.ID,
			&p.ServiceID,
			&p.Name,
			&p.Description,
			&p.Price,
			&p.TotalSessions,
			&p.DiscountPercentage,
			&p.IsActive,
		); err != nil {
			return nil, fmt.Errorf("%w: GetPackagesByService - scan row: %v", ErrScanRow, err)
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPackagesByService - rows error: %v", ErrScanRow, err)
	}

	return packages, nil
}
