package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
)

// AccountFilter narrows account listings.
type AccountFilter struct {
	Type     domain.AccountType
	IsActive *bool
	Limit    int
	Offset   int
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	Update(ctx context.Context, account *domain.Account) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter AccountFilter) ([]*domain.Account, int64, error)
}

// TransactionFilter narrows transaction listings. Zero values are ignored.
// StartDate and EndDate name calendar days and both are inclusive.
type TransactionFilter struct {
	Type      string
	AccountID string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// DateRange returns the half-open UTC interval [from, until) covered by
// StartDate and EndDate. Either bound is nil when unset.
func (f TransactionFilter) DateRange() (from, until *time.Time) {
	if f.StartDate != nil {
		d := startOfDay(*f.StartDate)
		from = &d
	}
	if f.EndDate != nil {
		d := startOfDay(*f.EndDate).AddDate(0, 0, 1)
		until = &d
	}
	return from, until
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TransactionRepository defines data access for transaction headers.
// Reads return headers with their entries attached.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Update(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Transaction, error)
	List(ctx context.Context, filter TransactionFilter) ([]*domain.Transaction, int64, error)
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.TransactionEntry) error
	DeleteByTransaction(ctx context.Context, tx Transaction, transactionID string) error
	GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionEntry, int64, error)
	SumByAccount(ctx context.Context, accountID string) (debits, credits decimal.Decimal, err error)
}

// InterestConfigRepository defines data access for interest configurations.
type InterestConfigRepository interface {
	Create(ctx context.Context, config *domain.InterestConfiguration) error
	GetByID(ctx context.Context, id string) (*domain.InterestConfiguration, error)
	GetActiveByIDTx(ctx context.Context, tx Transaction, id string) (*domain.InterestConfiguration, error)
	Update(ctx context.Context, config *domain.InterestConfiguration) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, isActive *bool, limit, offset int) ([]*domain.InterestConfiguration, int64, error)
}

// InterestPeriodRepository defines data access for account interest periods.
type InterestPeriodRepository interface {
	Create(ctx context.Context, tx Transaction, period *domain.AccountInterestPeriod) error
	// GetByTransaction returns the period opened by a transfer with its
	// configuration attached, or nil when the transfer opened none.
	GetByTransaction(ctx context.Context, transactionID string) (*domain.AccountInterestPeriod, error)
}

// PurchaseOrderRepository defines access to the payment columns of POs.
type PurchaseOrderRepository interface {
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.PurchaseOrder, error)
	UpdatePayment(ctx context.Context, tx Transaction, po *domain.PurchaseOrder) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	// Totals returns the sum of account balances and the sums of Debit and
	// Credit entry amounts across the whole ledger.
	Totals(ctx context.Context) (balances, debits, credits decimal.Decimal, err error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations. Get returns ErrCacheMiss when the key is absent.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release frees a key whose request did not succeed so it can be retried.
	Release(ctx context.Context, key string) error
}
