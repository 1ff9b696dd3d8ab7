package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new transaction header.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	err := txQueries(tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:              txn.ID,
		TransactionDate: timeToPgTimestamptz(txn.TransactionDate),
		TransactionType: txn.TransactionType,
		Description:     txn.Description,
		TotalAmount:     decimalToNumeric(txn.TotalAmount),
		Notes:           txn.Notes,
		ReferenceNumber: optionalText(txn.ReferenceNumber),
		RelatedPoID:     optionalText(txn.RelatedPOID),
		CreatedBy:       txn.CreatedBy,
		CreatedAt:       timeToPgTimestamptz(txn.CreatedAt),
		UpdatedAt:       timeToPgTimestamptz(txn.UpdatedAt),
	})

	return transactionConstraintError(err)
}

// Update rewrites the header columns of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	n, err := txQueries(tx).UpdateTransaction(ctx, generated.UpdateTransactionParams{
		ID:              txn.ID,
		TransactionDate: timeToPgTimestamptz(txn.TransactionDate),
		TransactionType: txn.TransactionType,
		Description:     txn.Description,
		TotalAmount:     decimalToNumeric(txn.TotalAmount),
		Notes:           txn.Notes,
		ReferenceNumber: optionalText(txn.ReferenceNumber),
		RelatedPoID:     optionalText(txn.RelatedPOID),
		CreatedBy:       txn.CreatedBy,
		UpdatedAt:       timeToPgTimestamptz(txn.UpdatedAt),
	})
	if err != nil {
		return transactionConstraintError(err)
	}

	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// transactionConstraintError maps header constraint violations. The two
// foreign keys on transactions are told apart by constraint name.
func transactionConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgErrForeignKeyViolation && pgErr.ConstraintName == fkTransactionPurchaseOrder {
		return domain.ErrPurchaseOrderNotFound
	}

	return mapConstraintError(err, domain.ErrDuplicateReference, domain.ErrUserNotFound)
}

// Delete deletes a transaction header. Its entries cascade.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteTransaction(ctx, id)
	if err != nil {
		return mapConstraintError(err, nil, domain.ErrTransactionInUse)
	}

	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// GetByID retrieves a transaction with its entries and creator username.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn := rowToTransaction(generated.Transaction{
		ID:              row.ID,
		TransactionDate: row.TransactionDate,
		TransactionType: row.TransactionType,
		Description:     row.Description,
		TotalAmount:     row.TotalAmount,
		Notes:           row.Notes,
		ReferenceNumber: row.ReferenceNumber,
		RelatedPoID:     row.RelatedPoID,
		CreatedBy:       row.CreatedBy,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	})
	txn.CreatedByUsername = row.Username

	entries, err := entriesByTransaction(ctx, r.queries, []string{id})
	if err != nil {
		return nil, err
	}
	txn.Entries = entries[id]

	return txn, nil
}

// GetByIDForUpdate locks a transaction header and returns it with its entries.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	queries := txQueries(tx)

	row, err := queries.GetTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	txn := rowToTransaction(row)

	entries, err := entriesByTransaction(ctx, queries, []string{id})
	if err != nil {
		return nil, err
	}
	txn.Entries = entries[id]

	return txn, nil
}

// List lists transactions matching the filter, newest transaction date
// first, with their entries attached.
func (r *TransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error) {
	from, until := filter.DateRange()
	params := generated.ListTransactionsParams{
		TransactionType: optionalText(filter.Type),
		AccountID:       optionalText(filter.AccountID),
		CreatedBy:       optionalText(filter.UserID),
		StartDate:       optionalTimestamptz(from),
		EndDate:         optionalTimestamptz(until),
		Limit:           int32(filter.Limit),
		Offset:          int32(filter.Offset),
	}

	rows, err := r.queries.ListTransactions(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.queries.CountTransactions(ctx, generated.CountTransactionsParams{
		TransactionType: params.TransactionType,
		AccountID:       params.AccountID,
		CreatedBy:       params.CreatedBy,
		StartDate:       params.StartDate,
		EndDate:         params.EndDate,
	})
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	entries, err := entriesByTransaction(ctx, r.queries, ids)
	if err != nil {
		return nil, 0, err
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txn := rowToTransaction(generated.Transaction{
			ID:              row.ID,
			TransactionDate: row.TransactionDate,
			TransactionType: row.TransactionType,
			Description:     row.Description,
			TotalAmount:     row.TotalAmount,
			Notes:           row.Notes,
			ReferenceNumber: row.ReferenceNumber,
			RelatedPoID:     row.RelatedPoID,
			CreatedBy:       row.CreatedBy,
			CreatedAt:       row.CreatedAt,
			UpdatedAt:       row.UpdatedAt,
		})
		txn.CreatedByUsername = row.Username
		txn.Entries = entries[row.ID]
		transactions = append(transactions, txn)
	}

	return transactions, total, nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:              row.ID,
		TransactionDate: row.TransactionDate.Time,
		TransactionType: row.TransactionType,
		Description:     row.Description,
		TotalAmount:     numericToDecimal(row.TotalAmount),
		Notes:           row.Notes,
		CreatedBy:       row.CreatedBy,
		RelatedPOID:     row.RelatedPoID.String,
		ReferenceNumber: row.ReferenceNumber.String,
		CreatedAt:       row.CreatedAt.Time,
		UpdatedAt:       row.UpdatedAt.Time,
	}
}
