package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// PurchaseOrderUseCase records payments against purchase orders.
type PurchaseOrderUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	userRepo        UserRepository
	poRepo          PurchaseOrderRepository
	outboxRepo      OutboxRepository
	mutator         *BalanceMutator
	idGen           IDGenerator
	metrics         *metrics.Metrics
}

// NewPurchaseOrderUseCase creates a new PurchaseOrderUseCase.
func NewPurchaseOrderUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	poRepo PurchaseOrderRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		userRepo:        userRepo,
		poRepo:          poRepo,
		outboxRepo:      outboxRepo,
		mutator:         NewBalanceMutator(accountRepo),
		idGen:           idGen,
		metrics:         m,
	}
}

// PayPurchaseOrderInput represents a payment against a purchase order.
type PayPurchaseOrderInput struct {
	PurchaseOrderID string
	AccountID       string
	Amount          decimal.Decimal
	PaymentDate     *time.Time
	Description     string
	Notes           string
	CreatedBy       string
}

// PaymentResult is the outcome of a committed payment.
type PaymentResult struct {
	PurchaseOrder *domain.PurchaseOrder
	Transaction   *domain.Transaction
}

// PayPurchaseOrder updates the paid amount of a PO and posts a Credit entry on
// the paying account, all in one unit of work.
func (uc *PurchaseOrderUseCase) PayPurchaseOrder(ctx context.Context, input PayPurchaseOrderInput) (*PaymentResult, error) {
	createdBy := domain.ActorID(ctx, input.CreatedBy)

	var missing []string
	if input.AccountID == "" {
		missing = append(missing, "account_id")
	}
	if input.PaymentDate == nil || input.PaymentDate.IsZero() {
		missing = append(missing, "payment_date")
	}
	if createdBy == "" {
		missing = append(missing, "created_by")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, domain.NewValidationError(err.Error(), "amount")
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	po, err := uc.poRepo.GetByIDForUpdate(txCtx, tx, input.PurchaseOrderID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.mutator.Lock(txCtx, tx, []string{input.AccountID}); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(txCtx, createdBy); err != nil {
		return nil, err
	}

	if err := po.ApplyPayment(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	po.UpdatedAt = now

	if err := uc.poRepo.UpdatePayment(txCtx, tx, po); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Payment for PO #%s", po.PONumber)
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		TransactionDate: input.PaymentDate.UTC(),
		TransactionType: domain.TransactionTypePOPayment,
		Description:     description,
		TotalAmount:     input.Amount,
		Notes:           input.Notes,
		CreatedBy:       createdBy,
		RelatedPOID:     po.ID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
		return nil, err
	}

	entry := &domain.TransactionEntry{
		ID:                uc.idGen.Generate(),
		TransactionID:     txn.ID,
		AccountID:         input.AccountID,
		Amount:            input.Amount,
		EntryType:         domain.EntryTypeCredit,
		RelatedEntityType: domain.RelatedEntityPurchaseOrder,
		RelatedEntityID:   po.ID,
		Notes:             input.Notes,
		CreatedAt:         now,
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.mutator.Apply(txCtx, tx, []*domain.TransactionEntry{entry}); err != nil {
		return nil, err
	}
	txn.Entries = []*domain.TransactionEntry{entry}

	event := domain.NewOutboxEvent(uc.idGen.Generate(), domain.AggregateTypePurchaseOrder, po.ID,
		domain.EventTypePurchaseOrderPaid, map[string]any{
			"purchase_order_id": po.ID,
			"po_number":         po.PONumber,
			"transaction_id":    txn.ID,
			"amount":            input.Amount.String(),
			"paid_amount":       po.PaidAmount.String(),
			"payment_status":    string(po.PaymentStatus),
		}, now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PurchaseOrderPayments.WithLabelValues(string(po.PaymentStatus)).Inc()
	}

	return &PaymentResult{PurchaseOrder: po, Transaction: txn}, nil
}
