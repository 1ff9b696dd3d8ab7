package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// TransactionConfig tunes the Transaction Writer.
type TransactionConfig struct {
	// StrictBalancing rejects entry sets whose Debit and Credit totals differ.
	StrictBalancing bool
}

// TransactionUseCase creates, replaces and deletes transactions together with
// their entries, keeping account balances consistent.
type TransactionUseCase struct {
	txManager       TransactionManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	entryRepo       EntryRepository
	userRepo        UserRepository
	outboxRepo      OutboxRepository
	mutator         *BalanceMutator
	idGen           IDGenerator
	metrics         *metrics.Metrics
	cfg             TransactionConfig
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
	cfg TransactionConfig,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		userRepo:        userRepo,
		outboxRepo:      outboxRepo,
		mutator:         NewBalanceMutator(accountRepo),
		idGen:           idGen,
		metrics:         m,
		cfg:             cfg,
	}
}

// EntryInput describes one entry of a transaction request.
type EntryInput struct {
	AccountID         string
	Amount            decimal.Decimal
	EntryType         domain.EntryType
	RelatedEntityType string
	RelatedEntityID   string
	Notes             string
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	TransactionDate *time.Time
	TransactionType string
	Description     string
	Notes           string
	CreatedBy       string
	RelatedPOID     string
	ReferenceNumber string
	Entries         []EntryInput
}

// UpdateTransactionInput patches a transaction. Nil header fields keep their
// stored value. A nil Entries keeps the entry set and total; a non-nil one,
// even empty, replaces the whole entry set.
type UpdateTransactionInput struct {
	TransactionDate *time.Time
	TransactionType *string
	Description     *string
	Notes           *string
	CreatedBy       *string
	RelatedPOID     *string
	ReferenceNumber *string
	Entries         *[]EntryInput
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	Page      int
	Limit     int
	Type      string
	AccountID string
	UserID    string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransactionPage is one page of transactions.
type TransactionPage struct {
	Items []*domain.Transaction
	Page  domain.PageInfo
}

// CreateTransaction persists a header and its entries and applies their
// balance effect, all in one unit of work.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	createdBy := domain.ActorID(ctx, input.CreatedBy)

	var missing []string
	if input.TransactionDate == nil || input.TransactionDate.IsZero() {
		missing = append(missing, "transaction_date")
	}
	if strings.TrimSpace(input.TransactionType) == "" {
		missing = append(missing, "transaction_type")
	}
	if createdBy == "" {
		missing = append(missing, "created_by")
	}
	if len(input.Entries) == 0 {
		missing = append(missing, "entries")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	now := time.Now().UTC()

	entries, err := uc.buildEntries(input.Entries, now)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	if _, err := uc.userRepo.GetByID(txCtx, createdBy); err != nil {
		return nil, err
	}

	if _, err := uc.mutator.Lock(txCtx, tx, domain.EntryAccountIDs(entries)); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		TransactionDate: input.TransactionDate.UTC(),
		TransactionType: strings.TrimSpace(input.TransactionType),
		Description:     input.Description,
		TotalAmount:     domain.SumAmounts(entries),
		Notes:           input.Notes,
		CreatedBy:       createdBy,
		RelatedPOID:     input.RelatedPOID,
		ReferenceNumber: input.ReferenceNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.transactionRepo.Create(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.writeEntries(txCtx, tx, txn, entries); err != nil {
		return nil, err
	}

	if err := uc.emit(txCtx, tx, txn, domain.EventTypeTransactionCreated, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(txn.TransactionType).Inc()
	}

	return txn, nil
}

// UpdateTransaction patches the header. When a new entry set is supplied it
// reverses and deletes the current entries, then writes and applies the new
// ones, so editing yields the same balances as deleting the transaction and
// creating it again with the new data.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, id string, input UpdateTransactionInput) (*domain.Transaction, error) {
	now := time.Now().UTC()

	var entries []*domain.TransactionEntry
	if input.Entries != nil {
		var err error
		if entries, err = uc.buildEntries(*input.Entries, now); err != nil {
			return nil, err
		}
	}

	if input.TransactionType != nil && strings.TrimSpace(*input.TransactionType) == "" {
		return nil, domain.NewValidationError("transaction_type cannot be empty", "transaction_type")
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	txn, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return nil, err
	}

	if txn.IsPOPayment() && touchesPayment(txn, input) {
		return nil, domain.ErrPaymentTransactionLocked
	}

	if input.CreatedBy != nil {
		if _, err := uc.userRepo.GetByID(txCtx, *input.CreatedBy); err != nil {
			return nil, err
		}
	}

	if input.Entries != nil {
		// Lock old and new accounts together in one sorted pass.
		ids := append(txn.AccountIDs(), domain.EntryAccountIDs(entries)...)
		if _, err := uc.mutator.Lock(txCtx, tx, ids); err != nil {
			return nil, err
		}

		if err := uc.mutator.Reverse(txCtx, tx, txn.Entries); err != nil {
			return nil, err
		}

		if err := uc.entryRepo.DeleteByTransaction(txCtx, tx, txn.ID); err != nil {
			return nil, err
		}

		if err := uc.writeEntries(txCtx, tx, txn, entries); err != nil {
			return nil, err
		}

		txn.TotalAmount = domain.SumAmounts(entries)
	}

	patchHeader(txn, input)
	txn.UpdatedAt = now

	if err := uc.transactionRepo.Update(txCtx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.emit(txCtx, tx, txn, domain.EventTypeTransactionUpdated, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	return txn, nil
}

// DeleteTransaction reverses every entry, then deletes the entries and the header.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	txn, err := uc.transactionRepo.GetByIDForUpdate(txCtx, tx, id)
	if err != nil {
		return err
	}

	if txn.IsPOPayment() {
		return domain.ErrPaymentTransactionLocked
	}

	if err := uc.mutator.Reverse(txCtx, tx, txn.Entries); err != nil {
		return err
	}

	if err := uc.entryRepo.DeleteByTransaction(txCtx, tx, txn.ID); err != nil {
		return err
	}

	if err := uc.transactionRepo.Delete(txCtx, tx, txn.ID); err != nil {
		return err
	}

	if err := uc.emit(txCtx, tx, txn, domain.EventTypeTransactionDeleted, time.Now().UTC()); err != nil {
		return err
	}

	if err := tx.Commit(txCtx); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// GetTransaction retrieves a transaction with its entries.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactions lists transactions newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) (*TransactionPage, error) {
	page, limit, offset := domain.NormalizePage(input.Page, input.Limit)

	items, total, err := uc.transactionRepo.List(ctx, TransactionFilter{
		Type:      input.Type,
		AccountID: input.AccountID,
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}

	return &TransactionPage{Items: items, Page: domain.NewPageInfo(total, page, limit)}, nil
}

// buildEntries validates entry inputs and turns them into domain entries.
func (uc *TransactionUseCase) buildEntries(inputs []EntryInput, now time.Time) ([]*domain.TransactionEntry, error) {
	var invalid []string

	entries := make([]*domain.TransactionEntry, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.AccountID) == "" {
			invalid = append(invalid, fmt.Sprintf("entries[%d].account_id", i))
		}
		if domain.ValidateAmount(in.Amount) != nil {
			invalid = append(invalid, fmt.Sprintf("entries[%d].amount", i))
		}
		if !in.EntryType.IsValid() {
			invalid = append(invalid, fmt.Sprintf("entries[%d].entry_type", i))
		}

		entries = append(entries, &domain.TransactionEntry{
			ID:                uc.idGen.Generate(),
			AccountID:         in.AccountID,
			Amount:            in.Amount,
			EntryType:         in.EntryType,
			RelatedEntityType: in.RelatedEntityType,
			RelatedEntityID:   in.RelatedEntityID,
			Notes:             in.Notes,
			CreatedAt:         now,
		})
	}

	if len(invalid) > 0 {
		return nil, domain.NewValidationError("invalid entries: account_id, positive amount and entry_type Debit or Credit are required", invalid...)
	}

	if uc.cfg.StrictBalancing && len(entries) > 0 {
		if err := domain.CheckBalanced(entries); err != nil {
			return nil, err
		}
	}

	return entries, nil
}

// writeEntries persists entries under txn and applies their balance effect.
func (uc *TransactionUseCase) writeEntries(ctx context.Context, tx Transaction, txn *domain.Transaction, entries []*domain.TransactionEntry) error {
	for _, e := range entries {
		e.TransactionID = txn.ID
		if err := uc.entryRepo.Create(ctx, tx, e); err != nil {
			return err
		}
	}

	if err := uc.mutator.Apply(ctx, tx, entries); err != nil {
		return err
	}

	txn.Entries = entries
	return nil
}

func (uc *TransactionUseCase) emit(ctx context.Context, tx Transaction, txn *domain.Transaction, eventType string, at time.Time) error {
	event := domain.NewOutboxEvent(uc.idGen.Generate(), domain.AggregateTypeTransaction, txn.ID, eventType, domain.TransactionPayload(txn), at)
	return uc.outboxRepo.Create(ctx, tx, event)
}

// touchesPayment reports whether input would change the amount, type or
// purchase order of a payment. Those are owned by the PO payment columns.
func touchesPayment(txn *domain.Transaction, input UpdateTransactionInput) bool {
	if input.Entries != nil {
		return true
	}
	if input.TransactionType != nil && strings.TrimSpace(*input.TransactionType) != txn.TransactionType {
		return true
	}
	return input.RelatedPOID != nil && *input.RelatedPOID != txn.RelatedPOID
}

func patchHeader(txn *domain.Transaction, input UpdateTransactionInput) {
	if input.TransactionDate != nil && !input.TransactionDate.IsZero() {
		txn.TransactionDate = input.TransactionDate.UTC()
	}
	if input.TransactionType != nil {
		txn.TransactionType = strings.TrimSpace(*input.TransactionType)
	}
	if input.Description != nil {
		txn.Description = *input.Description
	}
	if input.Notes != nil {
		txn.Notes = *input.Notes
	}
	if input.CreatedBy != nil {
		txn.CreatedBy = *input.CreatedBy
	}
	if input.RelatedPOID != nil {
		txn.RelatedPOID = *input.RelatedPOID
	}
	if input.ReferenceNumber != nil {
		txn.ReferenceNumber = *input.ReferenceNumber
	}
}
