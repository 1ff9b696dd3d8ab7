package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// AccountUseCase handles account administration. Balances are never set
// here; they only move through the Balance Mutator.
type AccountUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		metrics:     m,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name        string
	AccountType domain.AccountType
	Currency    string
	IsActive    *bool
}

// UpdateAccountInput represents a partial account update.
type UpdateAccountInput struct {
	Name        *string
	AccountType *domain.AccountType
	Currency    *string
	IsActive    *bool
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Page     int
	Limit    int
	Type     domain.AccountType
	IsActive *bool
}

// AccountPage is one page of accounts.
type AccountPage struct {
	Items []*domain.Account
	Page  domain.PageInfo
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	currency := input.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}

	account := &domain.Account{
		Name:           strings.TrimSpace(input.Name),
		Type:           input.AccountType,
		Currency:       strings.ToUpper(currency),
		CurrentBalance: decimal.Zero,
		IsActive:       true,
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account.ID = uc.idGen.Generate()
	account.CreatedAt = now
	account.UpdatedAt = now

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if err := uc.accountRepo.Create(txCtx, tx, account); err != nil {
		return nil, err
	}

	event := domain.NewOutboxEvent(uc.idGen.Generate(), domain.AggregateTypeAccount, account.ID,
		domain.EventTypeAccountCreated, map[string]any{
			"account_id":   account.ID,
			"account_name": account.Name,
			"account_type": string(account.Type),
			"currency":     account.Currency,
		}, now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) (*AccountPage, error) {
	if input.Type != "" && !input.Type.IsValid() {
		return nil, &domain.ValidationError{Fields: []string{"type"}, Message: domain.ErrInvalidAccountType.Error()}
	}

	page, limit, offset := domain.NormalizePage(input.Page, input.Limit)

	items, total, err := uc.accountRepo.List(ctx, AccountFilter{
		Type:     input.Type,
		IsActive: input.IsActive,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, err
	}

	return &AccountPage{Items: items, Page: domain.NewPageInfo(total, page, limit)}, nil
}

// UpdateAccount applies a partial update. The balance is not updatable.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, id string, input UpdateAccountInput) (*domain.Account, error) {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		account.Name = strings.TrimSpace(*input.Name)
	}
	if input.AccountType != nil {
		account.Type = *input.AccountType
	}
	if input.Currency != nil {
		account.Currency = strings.ToUpper(*input.Currency)
	}
	if input.IsActive != nil {
		account.IsActive = *input.IsActive
	}

	if err := validateAccount(account); err != nil {
		return nil, err
	}

	account.UpdatedAt = time.Now().UTC()

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount deletes an account that no entry or interest period references.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	return uc.accountRepo.Delete(ctx, id)
}

func validateAccount(a *domain.Account) error {
	if err := domain.ValidateAccountName(a.Name); err != nil {
		return domain.NewValidationError(err.Error(), "account_name")
	}
	if !a.Type.IsValid() {
		return &domain.ValidationError{Fields: []string{"account_type"}, Message: domain.ErrInvalidAccountType.Error()}
	}
	if err := domain.ValidateCurrency(a.Currency); err != nil {
		return domain.NewValidationError(err.Error(), "currency")
	}
	return nil
}
