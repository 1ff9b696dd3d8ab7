package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

const interestConfigCachePrefix = "interest_config:"

// InterestConfigUseCase administers interest configurations. Reads go through
// an optional cache that is invalidated on update and delete.
type InterestConfigUseCase struct {
	configRepo InterestConfigRepository
	cache      Cache
	cacheTTL   time.Duration
	idGen      IDGenerator
	logger     zerolog.Logger
}

// NewInterestConfigUseCase creates a new InterestConfigUseCase. cache may be nil.
func NewInterestConfigUseCase(
	configRepo InterestConfigRepository,
	cache Cache,
	cacheTTL time.Duration,
	idGen IDGenerator,
	logger zerolog.Logger,
) *InterestConfigUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &InterestConfigUseCase{
		configRepo: configRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
		idGen:      idGen,
		logger:     logger,
	}
}

// CreateInterestConfigInput represents input for creating a configuration.
type CreateInterestConfigInput struct {
	Name            string
	RatePercentage  *decimal.Decimal
	CalculationType domain.CalculationType
	Description     string
	IsActive        *bool
}

// UpdateInterestConfigInput represents a partial configuration update.
type UpdateInterestConfigInput struct {
	Name            *string
	RatePercentage  *decimal.Decimal
	CalculationType *domain.CalculationType
	Description     *string
	IsActive        *bool
}

// ListInterestConfigsInput represents input for listing configurations.
type ListInterestConfigsInput struct {
	Page     int
	Limit    int
	IsActive *bool
}

// InterestConfigPage is one page of configurations.
type InterestConfigPage struct {
	Items []*domain.InterestConfiguration
	Page  domain.PageInfo
}

// PreviewInterestInput represents a read-only interest computation.
type PreviewInterestInput struct {
	Principal decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
}

// InterestPreview is the result of PreviewInterest.
type InterestPreview struct {
	Config    *domain.InterestConfiguration
	Principal decimal.Decimal
	StartDate time.Time
	EndDate   time.Time
	Amount    decimal.Decimal
}

// CreateInterestConfig creates a configuration.
func (uc *InterestConfigUseCase) CreateInterestConfig(ctx context.Context, input CreateInterestConfigInput) (*domain.InterestConfiguration, error) {
	var missing []string
	if strings.TrimSpace(input.Name) == "" {
		missing = append(missing, "config_name")
	}
	if input.RatePercentage == nil {
		missing = append(missing, "rate_percentage")
	}
	if input.CalculationType == "" {
		missing = append(missing, "calculation_type")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	now := time.Now().UTC()
	config := &domain.InterestConfiguration{
		ID:              uc.idGen.Generate(),
		Name:            strings.TrimSpace(input.Name),
		RatePercentage:  *input.RatePercentage,
		CalculationType: input.CalculationType,
		Description:     input.Description,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if input.IsActive != nil {
		config.IsActive = *input.IsActive
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	if err := uc.configRepo.Create(ctx, config); err != nil {
		return nil, err
	}

	return config, nil
}

// GetInterestConfig retrieves a configuration, from the cache when possible.
func (uc *InterestConfigUseCase) GetInterestConfig(ctx context.Context, id string) (*domain.InterestConfiguration, error) {
	if config, ok := uc.cached(ctx, id); ok {
		return config, nil
	}

	config, err := uc.configRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.store(ctx, config)
	return config, nil
}

// ListInterestConfigs lists configurations ordered by name.
func (uc *InterestConfigUseCase) ListInterestConfigs(ctx context.Context, input ListInterestConfigsInput) (*InterestConfigPage, error) {
	page, limit, offset := domain.NormalizePage(input.Page, input.Limit)

	items, total, err := uc.configRepo.List(ctx, input.IsActive, limit, offset)
	if err != nil {
		return nil, err
	}

	return &InterestConfigPage{Items: items, Page: domain.NewPageInfo(total, page, limit)}, nil
}

// UpdateInterestConfig applies a partial update and invalidates the cache.
func (uc *InterestConfigUseCase) UpdateInterestConfig(ctx context.Context, id string, input UpdateInterestConfigInput) (*domain.InterestConfiguration, error) {
	config, err := uc.configRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		config.Name = strings.TrimSpace(*input.Name)
	}
	if input.RatePercentage != nil {
		config.RatePercentage = *input.RatePercentage
	}
	if input.CalculationType != nil {
		config.CalculationType = *input.CalculationType
	}
	if input.Description != nil {
		config.Description = *input.Description
	}
	if input.IsActive != nil {
		config.IsActive = *input.IsActive
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.UpdatedAt = time.Now().UTC()

	if err := uc.configRepo.Update(ctx, config); err != nil {
		return nil, err
	}

	uc.invalidate(ctx, id)
	return config, nil
}

// DeleteInterestConfig deletes a configuration no interest period references.
func (uc *InterestConfigUseCase) DeleteInterestConfig(ctx context.Context, id string) error {
	if err := uc.configRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.invalidate(ctx, id)
	return nil
}

// PreviewInterest computes the interest a configuration would charge without
// writing anything. The configuration may be inactive.
func (uc *InterestConfigUseCase) PreviewInterest(ctx context.Context, id string, input PreviewInterestInput) (*InterestPreview, error) {
	if err := domain.ValidateAmount(input.Principal); err != nil {
		return nil, domain.NewValidationError(err.Error(), "principal")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.NewValidationError("start_date and end_date are required", "start_date", "end_date")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, &domain.ValidationError{Fields: []string{"end_date"}, Message: domain.ErrInvalidInterestPeriod.Error()}
	}

	config, err := uc.GetInterestConfig(ctx, id)
	if err != nil {
		return nil, err
	}

	return &InterestPreview{
		Config:    config,
		Principal: input.Principal,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Amount:    domain.ComputeInterest(input.Principal, config.RatePercentage, config.CalculationType, input.StartDate, input.EndDate),
	}, nil
}

func (uc *InterestConfigUseCase) cached(ctx context.Context, id string) (*domain.InterestConfiguration, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, interestConfigCachePrefix+id)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			uc.logger.Warn().Err(err).Str("config_id", id).Msg("interest config cache read failed")
		}
		return nil, false
	}

	var config domain.InterestConfiguration
	if err := json.Unmarshal(data, &config); err != nil {
		uc.logger.Warn().Err(err).Str("config_id", id).Msg("discarding undecodable cached interest config")
		return nil, false
	}

	return &config, true
}

func (uc *InterestConfigUseCase) store(ctx context.Context, config *domain.InterestConfiguration) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(config)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, interestConfigCachePrefix+config.ID, data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("config_id", config.ID).Msg("interest config cache write failed")
	}
}

func (uc *InterestConfigUseCase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, interestConfigCachePrefix+id); err != nil {
		uc.logger.Warn().Err(err).Str("config_id", id).Msg("interest config cache invalidation failed")
	}
}
