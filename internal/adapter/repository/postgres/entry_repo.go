package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionEntry) error {
	err := txQueries(tx).CreateEntry(ctx, generated.CreateEntryParams{
		ID:                entry.ID,
		TransactionID:     entry.TransactionID,
		AccountID:         entry.AccountID,
		Amount:            decimalToNumeric(entry.Amount),
		EntryType:         string(entry.EntryType),
		RelatedEntityType: entry.RelatedEntityType,
		RelatedEntityID:   entry.RelatedEntityID,
		Notes:             entry.Notes,
		CreatedAt:         timeToPgTimestamptz(entry.CreatedAt),
	})

	return mapConstraintError(err, nil, domain.ErrAccountNotFound)
}

// DeleteByTransaction deletes every entry of a transaction.
func (r *EntryRepository) DeleteByTransaction(ctx context.Context, tx usecase.Transaction, transactionID string) error {
	return txQueries(tx).DeleteEntriesByTransaction(ctx, transactionID)
}

// GetByAccount retrieves entries by account ID, newest first.
func (r *EntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionEntry, int64, error) {
	rows, err := r.queries.GetEntriesByAccount(ctx, generated.GetEntriesByAccountParams{
		AccountID: accountID,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, 0, err
	}

	total, err := r.queries.CountEntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*domain.TransactionEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(generated.GetEntriesByTransactionIDsRow(row)))
	}

	return entries, total, nil
}

// SumByAccount returns the Debit and Credit totals of an account's entries.
func (r *EntryRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.SumEntriesByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Debits), numericToDecimal(row.Credits), nil
}

// entriesByTransaction loads the entries of the given transactions grouped
// by transaction id.
func entriesByTransaction(ctx context.Context, q *generated.Queries, ids []string) (map[string][]*domain.TransactionEntry, error) {
	grouped := make(map[string][]*domain.TransactionEntry, len(ids))
	if len(ids) == 0 {
		return grouped, nil
	}

	rows, err := q.GetEntriesByTransactionIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		grouped[row.TransactionID] = append(grouped[row.TransactionID], rowToEntry(row))
	}

	return grouped, nil
}

func rowToEntry(row generated.GetEntriesByTransactionIDsRow) *domain.TransactionEntry {
	return &domain.TransactionEntry{
		ID:                row.ID,
		TransactionID:     row.TransactionID,
		AccountID:         row.AccountID,
		Amount:            numericToDecimal(row.Amount),
		EntryType:         domain.EntryType(row.EntryType),
		RelatedEntityType: row.RelatedEntityType,
		RelatedEntityID:   row.RelatedEntityID,
		Notes:             row.Notes,
		CreatedAt:         row.CreatedAt.Time,
		AccountName:       row.AccountName,
	}
}
