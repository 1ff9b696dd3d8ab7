package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies an account. Transfers from Capital to Operational
// accounts are the ones eligible for interest.
type AccountType string

const (
	AccountTypeCapital     AccountType = "Capital"
	AccountTypeOperational AccountType = "Operational"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	return t == AccountTypeCapital || t == AccountTypeOperational
}

// DefaultCurrency is used when an account is created without a currency.
const DefaultCurrency = "IDR"

// Account represents a ledger account that holds a balance.
//
// CurrentBalance is never set by clients. It only changes when entries are
// applied or reversed, and always equals the sum of Debit minus Credit
// amounts of the live entries posted against the account.
type Account struct {
	ID             string
	Name           string
	Type           AccountType
	Currency       string
	CurrentBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanCover reports whether the account balance covers amount.
func (a *Account) CanCover(amount decimal.Decimal) bool {
	return a.CurrentBalance.GreaterThanOrEqual(amount)
}

// ValidateWithdrawal returns ErrInsufficientFunds when amount exceeds the balance.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if !a.CanCover(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// Post returns the balance after posting amount with the given entry type.
func (a *Account) Post(entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	return a.CurrentBalance.Add(entryType.Effect(amount))
}

// Unpost returns the balance after undoing a previous Post of the same entry.
func (a *Account) Unpost(entryType EntryType, amount decimal.Decimal) decimal.Decimal {
	return a.CurrentBalance.Sub(entryType.Effect(amount))
}

// InterestEligible reports whether a transfer from a to dst can open an
// interest period.
func (a *Account) InterestEligible(dst *Account) bool {
	return a.Type == AccountTypeCapital && dst.Type == AccountTypeOperational
}
