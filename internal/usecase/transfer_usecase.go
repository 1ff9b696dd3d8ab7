package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
)

// TransferUseCase moves funds between two accounts and optionally opens an
// interest period on the source account.
type TransferUseCase struct {
	txManager          TransactionManager
	accountRepo        AccountRepository
	transactionRepo    TransactionRepository
	entryRepo          EntryRepository
	userRepo           UserRepository
	interestConfigRepo InterestConfigRepository
	interestPeriodRepo InterestPeriodRepository
	outboxRepo         OutboxRepository
	mutator            *BalanceMutator
	idGen              IDGenerator
	metrics            *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	entryRepo EntryRepository,
	userRepo UserRepository,
	interestConfigRepo InterestConfigRepository,
	interestPeriodRepo InterestPeriodRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:          txManager,
		accountRepo:        accountRepo,
		transactionRepo:    transactionRepo,
		entryRepo:          entryRepo,
		userRepo:           userRepo,
		interestConfigRepo: interestConfigRepo,
		interestPeriodRepo: interestPeriodRepo,
		outboxRepo:         outboxRepo,
		mutator:            NewBalanceMutator(accountRepo),
		idGen:              idGen,
		metrics:            m,
	}
}

// CreateTransferInput represents input for a transfer.
type CreateTransferInput struct {
	SourceAccountID      string
	DestinationAccountID string
	Amount               decimal.Decimal
	Description          string
	TransactionDate      *time.Time
	CreatedBy            string

	ApplyInterest     bool
	InterestConfigID  string
	InterestStartDate *time.Time
	InterestEndDate   *time.Time
}

// TransferResult is the outcome of a committed transfer. InterestPeriod and
// InterestTransaction are nil when no interest period was opened.
type TransferResult struct {
	Transaction         *domain.Transaction
	InterestPeriod      *domain.AccountInterestPeriod
	InterestTransaction *domain.Transaction
	InterestAmount      decimal.Decimal
}

// ListTransfersInput represents input for listing transfers.
type ListTransfersInput struct {
	Page      int
	Limit     int
	AccountID string
	StartDate *time.Time
	EndDate   *time.Time
}

// TransferPage is one page of transfers.
type TransferPage struct {
	Items []*domain.Transfer
	Page  domain.PageInfo
}

// CreateTransfer runs the whole transfer, including the optional interest
// branch, in one unit of work. Any failure rolls everything back.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	start := time.Now()
	result, err := uc.createTransfer(ctx, input)
	if uc.metrics != nil {
		if err != nil {
			uc.metrics.TransferErrors.WithLabelValues(errorLabel(err)).Inc()
		} else {
			uc.metrics.TransfersCreated.Inc()
			uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
			if result.InterestPeriod != nil {
				uc.metrics.InterestPeriodsOpened.Inc()
				uc.metrics.InterestAccrued.Add(result.InterestAmount.InexactFloat64())
			}
		}
	}
	return result, err
}

func (uc *TransferUseCase) createTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	createdBy := domain.ActorID(ctx, input.CreatedBy)

	var missing []string
	if input.SourceAccountID == "" {
		missing = append(missing, "source_account_id")
	}
	if input.DestinationAccountID == "" {
		missing = append(missing, "destination_account_id")
	}
	if input.Amount.IsZero() {
		missing = append(missing, "amount")
	}
	if createdBy == "" {
		missing = append(missing, "created_by")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields", missing...)
	}

	if input.SourceAccountID == input.DestinationAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if input.TransactionDate != nil && !input.TransactionDate.IsZero() {
		date = input.TransactionDate.UTC()
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	accounts, err := uc.mutator.Lock(txCtx, tx, []string{input.SourceAccountID, input.DestinationAccountID})
	if err != nil {
		return nil, err
	}

	source := accounts[input.SourceAccountID]
	destination := accounts[input.DestinationAccountID]

	if _, err := uc.userRepo.GetByID(txCtx, createdBy); err != nil {
		return nil, err
	}

	if err := source.ValidateWithdrawal(input.Amount); err != nil {
		return nil, err
	}

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Transfer from %s to %s", source.Name, destination.Name)
	}

	transfer := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		TransactionDate: date,
		TransactionType: domain.TransactionTypeTransfer,
		Description:     description,
		TotalAmount:     input.Amount,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.transactionRepo.Create(txCtx, tx, transfer); err != nil {
		return nil, err
	}

	entries := []*domain.TransactionEntry{
		{
			ID:                uc.idGen.Generate(),
			TransactionID:     transfer.ID,
			AccountID:         source.ID,
			Amount:            input.Amount,
			EntryType:         domain.EntryTypeCredit,
			RelatedEntityType: domain.RelatedEntityTransfer,
			RelatedEntityID:   destination.ID,
			CreatedAt:         now,
			AccountName:       source.Name,
		},
		{
			ID:                uc.idGen.Generate(),
			TransactionID:     transfer.ID,
			AccountID:         destination.ID,
			Amount:            input.Amount,
			EntryType:         domain.EntryTypeDebit,
			RelatedEntityType: domain.RelatedEntityTransfer,
			RelatedEntityID:   source.ID,
			CreatedAt:         now,
			AccountName:       destination.Name,
		},
	}

	if err := uc.post(txCtx, tx, entries); err != nil {
		return nil, err
	}
	transfer.Entries = entries

	result := &TransferResult{Transaction: transfer, InterestAmount: decimal.Zero}

	if input.ApplyInterest && source.InterestEligible(destination) {
		if err := uc.openInterestPeriod(txCtx, tx, input, source, transfer, result, now); err != nil {
			return nil, err
		}
	}

	event := domain.NewOutboxEvent(uc.idGen.Generate(), domain.AggregateTypeTransaction, transfer.ID,
		domain.EventTypeTransferCompleted, domain.TransactionPayload(transfer), now)
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	return result, nil
}

// openInterestPeriod records the interest period opened by transfer and posts
// the interest expense against the source account. The source balance is not
// checked again and may go negative.
func (uc *TransferUseCase) openInterestPeriod(
	ctx context.Context,
	tx Transaction,
	input CreateTransferInput,
	source *domain.Account,
	transfer *domain.Transaction,
	result *TransferResult,
	now time.Time,
) error {
	var missing []string
	if input.InterestConfigID == "" {
		missing = append(missing, "interest_config_id")
	}
	if input.InterestStartDate == nil || input.InterestStartDate.IsZero() {
		missing = append(missing, "interest_start_date")
	}
	if input.InterestEndDate == nil || input.InterestEndDate.IsZero() {
		missing = append(missing, "interest_end_date")
	}
	if len(missing) > 0 {
		return domain.NewValidationError("interest configuration and period dates are required when applying interest", missing...)
	}

	start, end := input.InterestStartDate.UTC(), input.InterestEndDate.UTC()
	if end.Before(start) {
		return &domain.ValidationError{Fields: []string{"interest_end_date"}, Message: domain.ErrInvalidInterestPeriod.Error()}
	}

	config, err := uc.interestConfigRepo.GetActiveByIDTx(ctx, tx, input.InterestConfigID)
	if err != nil {
		return err
	}

	period := &domain.AccountInterestPeriod{
		ID:                           uc.idGen.Generate(),
		AccountID:                    source.ID,
		InterestConfigID:             config.ID,
		StartDate:                    start,
		EndDate:                      end,
		InitialTransferTransactionID: transfer.ID,
		PrincipalAmount:              input.Amount,
		Status:                       domain.InterestPeriodActive,
		CreatedAt:                    now,
		UpdatedAt:                    now,
		Config:                       config,
	}

	if err := uc.interestPeriodRepo.Create(ctx, tx, period); err != nil {
		return err
	}

	amount := domain.ComputeInterest(input.Amount, config.RatePercentage, config.CalculationType, start, end).
		Round(domain.AmountScale)

	expense := &domain.Transaction{
		ID:              uc.idGen.Generate(),
		TransactionDate: transfer.TransactionDate,
		TransactionType: domain.TransactionTypeInterestExpense,
		Description:     fmt.Sprintf("Interest expense for transfer from %s (%s)", source.Name, config.Name),
		TotalAmount:     amount,
		CreatedBy:       transfer.CreatedBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.transactionRepo.Create(ctx, tx, expense); err != nil {
		return err
	}

	entry := &domain.TransactionEntry{
		ID:                uc.idGen.Generate(),
		TransactionID:     expense.ID,
		AccountID:         source.ID,
		Amount:            amount,
		EntryType:         domain.EntryTypeCredit,
		RelatedEntityType: domain.RelatedEntityInterestExpense,
		RelatedEntityID:   period.ID,
		CreatedAt:         now,
		AccountName:       source.Name,
	}

	if err := uc.post(ctx, tx, []*domain.TransactionEntry{entry}); err != nil {
		return err
	}
	expense.Entries = []*domain.TransactionEntry{entry}

	event := domain.NewOutboxEvent(uc.idGen.Generate(), domain.AggregateTypeInterestPeriod, period.ID,
		domain.EventTypeInterestPeriodOpen, map[string]any{
			"period_id":        period.ID,
			"account_id":       period.AccountID,
			"config_id":        period.InterestConfigID,
			"transfer_id":      transfer.ID,
			"principal_amount": period.PrincipalAmount.String(),
			"interest_amount":  amount.String(),
		}, now)
	if err := uc.outboxRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	result.InterestPeriod = period
	result.InterestTransaction = expense
	result.InterestAmount = amount

	return nil
}

func (uc *TransferUseCase) post(ctx context.Context, tx Transaction, entries []*domain.TransactionEntry) error {
	for _, e := range entries {
		if err := uc.entryRepo.Create(ctx, tx, e); err != nil {
			return err
		}
	}
	return uc.mutator.Apply(ctx, tx, entries)
}

// ListTransfers lists transfer transactions newest first.
func (uc *TransferUseCase) ListTransfers(ctx context.Context, input ListTransfersInput) (*TransferPage, error) {
	page, limit, offset := domain.NormalizePage(input.Page, input.Limit)

	txns, total, err := uc.transactionRepo.List(ctx, TransactionFilter{
		Type:      domain.TransactionTypeTransfer,
		AccountID: input.AccountID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return nil, err
	}

	items := make([]*domain.Transfer, 0, len(txns))
	for _, txn := range txns {
		tr, err := domain.TransferFromTransaction(txn)
		if err != nil {
			return nil, err
		}
		items = append(items, tr)
	}

	return &TransferPage{Items: items, Page: domain.NewPageInfo(total, page, limit)}, nil
}

// GetTransferDetail returns a transfer with the interest summary of the period
// it opened, if any. The interest amount is recomputed for display only.
func (uc *TransferUseCase) GetTransferDetail(ctx context.Context, id string) (*domain.Transfer, error) {
	txn, err := uc.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, domain.ErrTransferNotFound
		}
		return nil, err
	}

	tr, err := domain.TransferFromTransaction(txn)
	if err != nil {
		return nil, err
	}

	period, err := uc.interestPeriodRepo.GetByTransaction(ctx, txn.ID)
	if err != nil {
		return nil, err
	}
	if period == nil || period.Config == nil {
		return tr, nil
	}

	tr.Interest = &domain.InterestSummary{
		ConfigName:      period.Config.Name,
		StartDate:       period.StartDate,
		EndDate:         period.EndDate,
		RatePercentage:  period.Config.RatePercentage,
		CalculationType: period.Config.CalculationType,
		Amount: domain.ComputeInterest(period.PrincipalAmount, period.Config.RatePercentage,
			period.Config.CalculationType, period.StartDate, period.EndDate),
	}

	return tr, nil
}

// errorLabel returns a low-cardinality metric label for err.
func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrSameAccount), errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrAmountTooLarge):
		return "invalid_request"
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrInterestConfigNotFound), errors.Is(err, domain.ErrInterestConfigInactive):
		return "not_found"
	default:
		return "internal"
	}
}
