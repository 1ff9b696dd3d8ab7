package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type tags produced by this service. Clients may use any other
// free-form tag through the generic transaction API.
const (
	TransactionTypeTransfer        = "Transfer"
	TransactionTypeInterestExpense = "Interest Expense"
	TransactionTypePOPayment       = "PO Payment"
)

// Transaction is the header grouping one or more entries.
type Transaction struct {
	ID              string
	TransactionDate time.Time
	TransactionType string
	Description     string
	TotalAmount     decimal.Decimal
	Notes           string
	CreatedBy       string
	RelatedPOID     string
	ReferenceNumber string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Entries []*TransactionEntry

	// CreatedByUsername is populated on reads for presentation only.
	CreatedByUsername string
}

// IsPOPayment reports whether the transaction settles a purchase order.
func (t *Transaction) IsPOPayment() bool {
	return t.TransactionType == TransactionTypePOPayment && t.RelatedPOID != ""
}

// AccountIDs returns the distinct account ids referenced by the entries.
func (t *Transaction) AccountIDs() []string {
	return EntryAccountIDs(t.Entries)
}

// EntryAccountIDs returns the distinct account ids referenced by entries,
// in first-seen order.
func EntryAccountIDs(entries []*TransactionEntry) []string {
	seen := make(map[string]bool, len(entries))
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if !seen[e.AccountID] {
			seen[e.AccountID] = true
			ids = append(ids, e.AccountID)
		}
	}
	return ids
}

// FirstEntry returns the first entry of the given type, or nil.
func (t *Transaction) FirstEntry(entryType EntryType) *TransactionEntry {
	for _, e := range t.Entries {
		if e.EntryType == entryType {
			return e
		}
	}
	return nil
}
