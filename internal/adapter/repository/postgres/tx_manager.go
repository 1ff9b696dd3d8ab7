package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

type pgxPool interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxManager implements usecase.TransactionManager.
type TxManager struct {
	pool    pgxPool
	options pgx.TxOptions
}

// NewTxManager creates a new TxManager whose transactions run at the given
// isolation level. An empty level leaves the server default in place.
func NewTxManager(pool *pgxpool.Pool, isoLevel pgx.TxIsoLevel) *TxManager {
	return newTxManagerWithPool(pool, isoLevel)
}

func newTxManagerWithPool(pool pgxPool, isoLevel pgx.TxIsoLevel) *TxManager {
	return &TxManager{pool: pool, options: pgx.TxOptions{IsoLevel: isoLevel}}
}

// ParseIsolationLevel maps a configuration value such as "repeatable_read"
// to a pgx isolation level.
func ParseIsolationLevel(level string) (pgx.TxIsoLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "read_committed":
		return pgx.ReadCommitted, nil
	case "repeatable_read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	default:
		return "", fmt.Errorf("unsupported isolation level %q", level)
	}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.BeginTx(ctx, m.options)
	if err != nil {
		return nil, err
	}

	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction. Rolling back a finished transaction
// is a no-op, so callers may always defer it.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

// txQueries binds the generated queries to the unit of work.
func txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}
