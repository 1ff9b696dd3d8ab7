package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres/generated"
	"github.com/iho/fundledger/internal/usecase"
)

// PurchaseOrderRepository implements usecase.PurchaseOrderRepository. It only
// touches the payment columns; the rest of the purchase order belongs to
// procurement.
type PurchaseOrderRepository struct{}

// NewPurchaseOrderRepository creates a new PurchaseOrderRepository.
func NewPurchaseOrderRepository() *PurchaseOrderRepository {
	return &PurchaseOrderRepository{}
}

// GetByIDForUpdate locks a purchase order row.
func (r *PurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	row, err := txQueries(tx).GetPurchaseOrderByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPurchaseOrderNotFound
		}

		return nil, err
	}

	return rowToPurchaseOrder(row), nil
}

// UpdatePayment writes paid_amount and payment_status.
func (r *PurchaseOrderRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	n, err := txQueries(tx).UpdatePurchaseOrderPayment(ctx, generated.UpdatePurchaseOrderPaymentParams{
		ID:            po.ID,
		PaidAmount:    decimalToNumeric(po.PaidAmount),
		PaymentStatus: string(po.PaymentStatus),
		UpdatedAt:     timeToPgTimestamptz(po.UpdatedAt),
	})
	if err != nil {
		return err
	}

	if n == 0 {
		return domain.ErrPurchaseOrderNotFound
	}

	return nil
}

func rowToPurchaseOrder(row generated.PurchaseOrder) *domain.PurchaseOrder {
	return &domain.PurchaseOrder{
		ID:            row.ID,
		PONumber:      row.PoNumber,
		TotalAmount:   numericToDecimal(row.TotalAmount),
		PaidAmount:    numericToDecimal(row.PaidAmount),
		PaymentStatus: domain.PaymentStatus(row.PaymentStatus),
		UpdatedAt:     row.UpdatedAt.Time,
	}
}
