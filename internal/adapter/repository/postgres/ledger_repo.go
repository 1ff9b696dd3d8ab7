package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// Totals returns the sum of account balances and the ledger-wide Debit and
// Credit totals.
func (r *LedgerRepository) Totals(ctx context.Context) (balances, debits, credits decimal.Decimal, err error) {
	q := generated.New(r.pool)
	result, err := q.GetLedgerTotals(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(result.TotalBalances),
		numericToDecimal(result.TotalDebits),
		numericToDecimal(result.TotalCredits),
		nil
}
