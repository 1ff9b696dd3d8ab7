package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPurchaseOrder_ApplyPayment(t *testing.T) {
	tests := []struct {
		name       string
		paid       int64
		payment    int64
		wantErr    error
		wantPaid   int64
		wantStatus PaymentStatus
	}{
		{"first partial payment", 0, 300, nil, 300, PaymentPartiallyPaid},
		{"settles the balance", 300, 700, nil, 1000, PaymentPaid},
		{"single full payment", 0, 1000, nil, 1000, PaymentPaid},
		{"overpayment rejected", 900, 200, ErrOverpayment, 900, PaymentPartiallyPaid},
		{"zero rejected", 0, 0, ErrInvalidAmount, 0, PaymentUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			po := &PurchaseOrder{
				TotalAmount:   decimal.NewFromInt(1000),
				PaidAmount:    decimal.NewFromInt(tt.paid),
				PaymentStatus: PaymentStatusFor(decimal.NewFromInt(tt.paid), decimal.NewFromInt(1000)),
			}

			err := po.ApplyPayment(decimal.NewFromInt(tt.payment))
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if !po.PaidAmount.Equal(decimal.NewFromInt(tt.wantPaid)) {
				t.Errorf("expected paid %d, got %s", tt.wantPaid, po.PaidAmount)
			}
			if po.PaymentStatus != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, po.PaymentStatus)
			}
		})
	}
}

func TestEntryTypeEffect(t *testing.T) {
	amount := decimal.NewFromInt(500)

	if !EntryTypeDebit.Effect(amount).Equal(amount) {
		t.Error("expected Debit to add to the balance")
	}
	if !EntryTypeCredit.Effect(amount).Equal(amount.Neg()) {
		t.Error("expected Credit to subtract from the balance")
	}
	if EntryType("debit").IsValid() {
		t.Error("expected entry types to be case sensitive")
	}
}

func TestCheckBalanced(t *testing.T) {
	balanced := []*TransactionEntry{
		{AccountID: "a", EntryType: EntryTypeDebit, Amount: decimal.NewFromInt(500)},
		{AccountID: "b", EntryType: EntryTypeCredit, Amount: decimal.NewFromInt(200)},
		{AccountID: "c", EntryType: EntryTypeCredit, Amount: decimal.NewFromInt(300)},
	}
	if err := CheckBalanced(balanced); err != nil {
		t.Fatalf("expected balanced entries, got %v", err)
	}
	if total := SumAmounts(balanced); !total.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected sum 1000, got %s", total)
	}

	unbalanced := balanced[:2]
	if err := CheckBalanced(unbalanced); err != ErrUnbalancedTransaction {
		t.Fatalf("expected ErrUnbalancedTransaction, got %v", err)
	}

	ids := EntryAccountIDs(append(balanced, &TransactionEntry{AccountID: "a"}))
	if len(ids) != 3 {
		t.Fatalf("expected 3 distinct accounts, got %v", ids)
	}
}
