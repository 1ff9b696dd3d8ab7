package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatusSuccess is the only status a committed transfer can have.
const TransferStatusSuccess = "success"

// Transfer is a read model over a "Transfer" transaction. The source side is
// taken from its Credit entry and the destination from its Debit entry.
type Transfer struct {
	ID                     string
	Date                   time.Time
	SourceAccountID        string
	SourceAccountName      string
	DestinationAccountID   string
	DestinationAccountName string
	Amount                 decimal.Decimal
	Description            string
	Status                 string
	CreatedBy              string
	CreatedByUsername      string
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Interest *InterestSummary
}

// InterestSummary describes the interest period opened by a transfer.
// Amount is recomputed with ComputeInterest and never read from storage.
type InterestSummary struct {
	ConfigName      string
	StartDate       time.Time
	EndDate         time.Time
	RatePercentage  decimal.Decimal
	CalculationType CalculationType
	Amount          decimal.Decimal
}

// TransferFromTransaction builds the transfer view of t.
func TransferFromTransaction(t *Transaction) (*Transfer, error) {
	if t.TransactionType != TransactionTypeTransfer {
		return nil, ErrTransferNotFound
	}

	tr := &Transfer{
		ID:                t.ID,
		Date:              t.TransactionDate,
		Amount:            t.TotalAmount,
		Description:       t.Description,
		Status:            TransferStatusSuccess,
		CreatedBy:         t.CreatedBy,
		CreatedByUsername: t.CreatedByUsername,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}

	if credit := t.FirstEntry(EntryTypeCredit); credit != nil {
		tr.SourceAccountID = credit.AccountID
		tr.SourceAccountName = credit.AccountName
	}
	if debit := t.FirstEntry(EntryTypeDebit); debit != nil {
		tr.DestinationAccountID = debit.AccountID
		tr.DestinationAccountName = debit.AccountName
	}

	return tr, nil
}
