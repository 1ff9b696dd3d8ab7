package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// reconcilePageSize is the number of accounts fetched per page by ReconcileAll.
const reconcilePageSize = 100

// ReconciliationUseCase compares stored balances with the entry log.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	ledgerRepo  LedgerRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	AccountID         string
	AccountName       string
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

// RecomputeBalance returns the balance implied by the live entries of an
// account: the sum of its Debit amounts minus the sum of its Credit amounts.
func (uc *ReconciliationUseCase) RecomputeBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	debits, credits, err := uc.entryRepo.SumByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return debits.Sub(credits), nil
}

// ReconcileAccount compares the stored balance of an account with RecomputeBalance.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	calculated, err := uc.RecomputeBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}

	diff := account.CurrentBalance.Sub(calculated)

	return &ReconciliationResult{
		AccountID:         account.ID,
		AccountName:       account.Name,
		RecordedBalance:   account.CurrentBalance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}

// ReconcileAllAccounts reconciles every account in the system
func (uc *ReconciliationUseCase) ReconcileAllAccounts(ctx context.Context) ([]*ReconciliationResult, error) {
	var results []*ReconciliationResult

	for offset := 0; ; offset += reconcilePageSize {
		accounts, total, err := uc.accountRepo.List(ctx, AccountFilter{Limit: reconcilePageSize, Offset: offset})
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			result, err := uc.ReconcileAccount(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile account %s: %w", account.ID, err)
			}
			results = append(results, result)
		}

		if len(accounts) < reconcilePageSize || int64(offset+len(accounts)) >= total {
			break
		}
	}

	return results, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReconciliationReport reconciles all accounts and checks ledger totals.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	results, err := uc.ReconcileAllAccounts(ctx)
	if err != nil {
		return nil, err
	}

	_, ledgerErr := NewLedgerUseCase(uc.ledgerRepo).CheckConsistency(ctx)
	if ledgerErr != nil && !errors.Is(ledgerErr, ErrInconsistentLedger) {
		return nil, ledgerErr
	}

	report := &ReconciliationReport{
		TotalAccounts:    len(results),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		CheckedAt:        time.Now().UTC(),
	}

	for _, result := range results {
		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
