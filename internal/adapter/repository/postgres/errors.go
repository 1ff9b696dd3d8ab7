package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/fundledger/internal/domain"
)

// PostgreSQL constraint violation codes.
const (
	pgErrUniqueViolation     = "23505"
	pgErrForeignKeyViolation = "23503"
	pgErrCheckViolation      = "23514"
)

// Constraint names referenced by error mapping.
const (
	fkTransactionPurchaseOrder = "transactions_related_po_id_fkey"
)

// mapConstraintError translates unique and foreign-key violations into the
// given domain errors. A nil target leaves that violation untouched. Check
// violations always become validation errors.
func mapConstraintError(err error, onUnique, onForeignKey error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		if onUnique != nil {
			return onUnique
		}
	case pgErrForeignKeyViolation:
		if onForeignKey != nil {
			return onForeignKey
		}
	case pgErrCheckViolation:
		return domain.NewValidationError("value violates constraint " + pgErr.ConstraintName)
	}

	return err
}
