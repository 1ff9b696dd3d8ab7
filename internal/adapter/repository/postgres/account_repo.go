package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new account.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	err := txQueries(tx).CreateAccount(ctx, generated.CreateAccountParams{
		ID:             account.ID,
		AccountName:    account.Name,
		AccountType:    string(account.Type),
		Currency:       account.Currency,
		CurrentBalance: decimalToNumeric(account.CurrentBalance),
		IsActive:       account.IsActive,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})

	return mapConstraintError(err, domain.ErrDuplicateAccountName, nil)
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByIDsForUpdate retrieves multiple accounts by IDs with FOR UPDATE locks,
// taken in id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	rows, err := txQueries(tx).GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, nil
}

// UpdateBalance updates the balance of an account.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	return txQueries(tx).UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:             id,
		CurrentBalance: decimalToNumeric(balance),
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
}

// Update updates the descriptive columns of an account. The balance column
// is only written through UpdateBalance.
func (r *AccountRepository) Update(ctx context.Context, account *domain.Account) error {
	n, err := r.queries.UpdateAccount(ctx, generated.UpdateAccountParams{
		ID:          account.ID,
		AccountName: account.Name,
		AccountType: string(account.Type),
		Currency:    account.Currency,
		IsActive:    account.IsActive,
		UpdatedAt:   timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return mapConstraintError(err, domain.ErrDuplicateAccountName, nil)
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// Delete deletes an account no entry or interest period references.
func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteAccount(ctx, id)
	if err != nil {
		return mapConstraintError(err, nil, domain.ErrAccountInUse)
	}

	if n == 0 {
		return domain.ErrAccountNotFound
	}

	return nil
}

// List lists accounts matching the filter ordered by name, with the total
// number of matches.
func (r *AccountRepository) List(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, int64, error) {
	accountType := optionalText(string(filter.Type))
	isActive := optionalBool(filter.IsActive)

	rows, err := r.queries.ListAccounts(ctx, generated.ListAccountsParams{
		AccountType: accountType,
		IsActive:    isActive,
		Limit:       int32(filter.Limit),
		Offset:      int32(filter.Offset),
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := r.queries.CountAccounts(ctx, generated.CountAccountsParams{
		AccountType: accountType,
		IsActive:    isActive,
	})
	if err != nil {
		return nil, 0, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToAccount(row))
	}

	return accounts, total, nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		ID:             row.ID,
		Name:           row.AccountName,
		Type:           domain.AccountType(row.AccountType),
		Currency:       row.Currency,
		CurrentBalance: numericToDecimal(row.CurrentBalance),
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
