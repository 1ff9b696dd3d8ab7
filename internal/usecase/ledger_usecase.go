package usecase

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInconsistentLedger is returned when account balances drift from the entry log.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: balances do not match entries")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// ConsistencyReport summarizes ledger-wide totals.
type ConsistencyReport struct {
	TotalBalances decimal.Decimal
	TotalDebits   decimal.Decimal
	TotalCredits  decimal.Decimal
	// Difference is TotalBalances minus (TotalDebits - TotalCredits).
	Difference   decimal.Decimal
	IsConsistent bool
}

// CheckConsistency verifies that the sum of account balances equals the net
// effect of all live entries. Single-sided system postings such as interest
// expense make debits and credits differ, so only the balances are compared.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ConsistencyReport, error) {
	balances, debits, credits, err := uc.ledgerRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	diff := balances.Sub(debits.Sub(credits))

	report := &ConsistencyReport{
		TotalBalances: balances,
		TotalDebits:   debits,
		TotalCredits:  credits,
		Difference:    diff,
		IsConsistent:  diff.IsZero(),
	}

	if !report.IsConsistent {
		return report, ErrInconsistentLedger
	}

	return report, nil
}
