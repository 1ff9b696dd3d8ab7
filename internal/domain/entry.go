package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryType is the side of a ledger line.
//
// In this ledger a Debit increases the account balance and a Credit decreases
// it. This is the inverse of textbook asset accounting and is kept on purpose:
// existing balances were produced under this convention.
type EntryType string

const (
	EntryTypeDebit  EntryType = "Debit"
	EntryTypeCredit EntryType = "Credit"
)

// IsValid reports whether t is Debit or Credit.
func (t EntryType) IsValid() bool {
	return t == EntryTypeDebit || t == EntryTypeCredit
}

// Effect returns the signed balance delta of an entry of this type.
func (t EntryType) Effect(amount decimal.Decimal) decimal.Decimal {
	if t == EntryTypeCredit {
		return amount.Neg()
	}
	return amount
}

// Related entity tags stored on entries.
const (
	RelatedEntityTransfer        = "Transfer"
	RelatedEntityInterestExpense = "Interest Expense"
	RelatedEntityPurchaseOrder   = "Purchase Order"
)

// TransactionEntry is one Debit or Credit line against one account.
// Entries are immutable; corrections delete and recreate them.
type TransactionEntry struct {
	ID                string
	TransactionID     string
	AccountID         string
	Amount            decimal.Decimal
	EntryType         EntryType
	RelatedEntityType string
	RelatedEntityID   string
	Notes             string
	CreatedAt         time.Time

	// AccountName is populated on reads for presentation only.
	AccountName string
}

// Effect returns the signed balance delta this entry applies to its account.
func (e *TransactionEntry) Effect() decimal.Decimal {
	return e.EntryType.Effect(e.Amount)
}

// SumAmounts returns the sum of entry amounts.
func SumAmounts(entries []*TransactionEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// SideTotals returns the Debit and Credit totals of entries.
func SideTotals(entries []*TransactionEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.EntryType {
		case EntryTypeDebit:
			debits = debits.Add(e.Amount)
		case EntryTypeCredit:
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits
}

// CheckBalanced returns ErrUnbalancedTransaction when debits and credits differ.
func CheckBalanced(entries []*TransactionEntry) error {
	debits, credits := SideTotals(entries)
	if !debits.Equal(credits) {
		return ErrUnbalancedTransaction
	}
	return nil
}
