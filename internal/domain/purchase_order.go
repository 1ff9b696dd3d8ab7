package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of a purchase order.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPartiallyPaid PaymentStatus = "Partially Paid"
	PaymentPaid          PaymentStatus = "Paid"
)

// PurchaseOrder holds the payment columns of a PO. The rest of the PO
// lifecycle belongs to the procurement module.
type PurchaseOrder struct {
	ID            string
	PONumber      string
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PaymentStatus PaymentStatus
	UpdatedAt     time.Time
}

// Outstanding returns the amount still to be paid.
func (po *PurchaseOrder) Outstanding() decimal.Decimal {
	return po.TotalAmount.Sub(po.PaidAmount)
}

// ApplyPayment adds amount to PaidAmount and recomputes PaymentStatus.
// Payments that would exceed TotalAmount are rejected with ErrOverpayment.
func (po *PurchaseOrder) ApplyPayment(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	paid := po.PaidAmount.Add(amount)
	if paid.GreaterThan(po.TotalAmount) {
		return ErrOverpayment
	}

	po.PaidAmount = paid
	po.PaymentStatus = PaymentStatusFor(paid, po.TotalAmount)
	return nil
}

// PaymentStatusFor derives the status from paid and total amounts.
func PaymentStatusFor(paid, total decimal.Decimal) PaymentStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentPaid
	case paid.IsPositive():
		return PaymentPartiallyPaid
	default:
		return PaymentUnpaid
	}
}
