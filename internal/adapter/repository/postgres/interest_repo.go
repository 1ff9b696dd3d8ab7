package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// InterestConfigRepository implements usecase.InterestConfigRepository.
type InterestConfigRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInterestConfigRepository creates a new InterestConfigRepository.
func NewInterestConfigRepository(pool *pgxpool.Pool) *InterestConfigRepository {
	return &InterestConfigRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new interest configuration.
func (r *InterestConfigRepository) Create(ctx context.Context, config *domain.InterestConfiguration) error {
	err := r.queries.CreateInterestConfig(ctx, generated.CreateInterestConfigParams{
		ID:              config.ID,
		ConfigName:      config.Name,
		RatePercentage:  decimalToNumeric(config.RatePercentage),
		CalculationType: string(config.CalculationType),
		Description:     config.Description,
		IsActive:        config.IsActive,
		CreatedAt:       timeToPgTimestamptz(config.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(config.UpdatedAt),
	})

	return mapConstraintError(err, domain.ErrDuplicateInterestConfigName, nil)
}

// GetByID retrieves a configuration whether or not it is active.
func (r *InterestConfigRepository) GetByID(ctx context.Context, id string) (*domain.InterestConfiguration, error) {
	row, err := r.queries.GetInterestConfigByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInterestConfigNotFound
		}

		return nil, err
	}

	return rowToInterestConfig(row), nil
}

// GetActiveByIDTx reads an active configuration inside the unit of work and
// holds a share lock on it until commit.
func (r *InterestConfigRepository) GetActiveByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.InterestConfiguration, error) {
	row, err := txQueries(tx).GetActiveInterestConfigByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInterestConfigInactive
		}

		return nil, err
	}

	return rowToInterestConfig(row), nil
}

// Update rewrites a configuration.
func (r *InterestConfigRepository) Update(ctx context.Context, config *domain.InterestConfiguration) error {
	n, err := r.queries.UpdateInterestConfig(ctx, generated.UpdateInterestConfigParams{
		ID:              config.ID,
		ConfigName:      config.Name,
		RatePercentage:  decimalToNumeric(config.RatePercentage),
		CalculationType: string(config.CalculationType),
		Description:     config.Description,
		IsActive:        config.IsActive,
		UpdatedAt:       timeToPgTimestamptz(config.UpdatedAt),
	})
	if err != nil {
		return mapConstraintError(err, domain.ErrDuplicateInterestConfigName, nil)
	}

	if n == 0 {
		return domain.ErrInterestConfigNotFound
	}

	return nil
}

// Delete deletes a configuration no interest period references.
func (r *InterestConfigRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteInterestConfig(ctx, id)
	if err != nil {
		return mapConstraintError(err, nil, domain.ErrInterestConfigInUse)
	}

	if n == 0 {
		return domain.ErrInterestConfigNotFound
	}

	return nil
}

// List lists configurations ordered by name.
func (r *InterestConfigRepository) List(ctx context.Context, isActive *bool, limit, offset int) ([]*domain.InterestConfiguration, int64, error) {
	active := optionalBool(isActive)

	rows, err := r.queries.ListInterestConfigs(ctx, generated.ListInterestConfigsParams{
		IsActive: active,
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := r.queries.CountInterestConfigs(ctx, active)
	if err != nil {
		return nil, 0, err
	}

	configs := make([]*domain.InterestConfiguration, 0, len(rows))
	for _, row := range rows {
		configs = append(configs, rowToInterestConfig(row))
	}

	return configs, total, nil
}

func rowToInterestConfig(row generated.InterestConfiguration) *domain.InterestConfiguration {
	return &domain.InterestConfiguration{
		ID:              row.ID,
		Name:            row.ConfigName,
		RatePercentage:  numericToDecimal(row.RatePercentage),
		CalculationType: domain.CalculationType(row.CalculationType),
		Description:     row.Description,
		IsActive:        row.IsActive,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}

// InterestPeriodRepository implements usecase.InterestPeriodRepository.
type InterestPeriodRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewInterestPeriodRepository creates a new InterestPeriodRepository.
func NewInterestPeriodRepository(pool *pgxpool.Pool) *InterestPeriodRepository {
	return &InterestPeriodRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new interest period.
func (r *InterestPeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.AccountInterestPeriod) error {
	return txQueries(tx).CreateInterestPeriod(ctx, generated.CreateInterestPeriodParams{
		ID:                           period.ID,
		AccountID:                    period.AccountID,
		InterestConfigID:             period.InterestConfigID,
		StartDate:                    timeToPgDate(period.StartDate),
		EndDate:                      timeToPgDate(period.EndDate),
		ActualEndDate:                optionalDate(period.ActualEndDate),
		InitialTransferTransactionID: period.InitialTransferTransactionID,
		PrincipalAmount:              decimalToNumeric(period.PrincipalAmount),
		Status:                       string(period.Status),
		CreatedAt:                    timeToPgTimestamptz(period.CreatedAt),
		UpdatedAt:                    timeToPgTimestamptz(period.UpdatedAt),
	})
}

// GetByTransaction returns the period opened by a transfer, or nil.
func (r *InterestPeriodRepository) GetByTransaction(ctx context.Context, transactionID string) (*domain.AccountInterestPeriod, error) {
	row, err := r.queries.GetInterestPeriodByTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &domain.AccountInterestPeriod{
		ID:                           row.ID,
		AccountID:                    row.AccountID,
		InterestConfigID:             row.InterestConfigID,
		StartDate:                    row.StartDate.Time,
		EndDate:                      row.EndDate.Time,
		ActualEndDate:                dateToTimePtr(row.ActualEndDate),
		InitialTransferTransactionID: row.InitialTransferTransactionID,
		PrincipalAmount:              numericToDecimal(row.PrincipalAmount),
		Status:                       domain.InterestPeriodStatus(row.Status),
		CreatedAt:                    row.CreatedAt.Time,
		UpdatedAt:                    row.UpdatedAt.Time,
		Config: &domain.InterestConfiguration{
			ID:              row.InterestConfigID,
			Name:            row.ConfigName,
			RatePercentage:  numericToDecimal(row.RatePercentage),
			CalculationType: domain.CalculationType(row.CalculationType),
			Description:     row.Description,
			IsActive:        row.IsActive,
		},
	}, nil
}
