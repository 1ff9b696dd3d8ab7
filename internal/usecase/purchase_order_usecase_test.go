package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

func TestPurchaseOrderUseCase_PayPurchaseOrder(t *testing.T) {
	newUseCase := func(f *fixture) *usecase.PurchaseOrderUseCase {
		return usecase.NewPurchaseOrderUseCase(
			f.TxManager, f.Accounts, f.Transactions, f.Entries, f.users,
			f.PurchaseOrders, f.Outbox, f.IDGen, nil,
		)
	}

	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 10_000)
		f.PurchaseOrders.Seed(&domain.PurchaseOrder{
			ID:            "po-1",
			PONumber:      "PO-2024-001",
			TotalAmount:   decimal.NewFromInt(1000),
			PaidAmount:    decimal.Zero,
			PaymentStatus: domain.PaymentUnpaid,
		})
		return f
	}

	pay := func(amount int64) usecase.PayPurchaseOrderInput {
		return usecase.PayPurchaseOrderInput{
			PurchaseOrderID: "po-1",
			AccountID:       "ops",
			Amount:          decimal.NewFromInt(amount),
			PaymentDate:     date("2024-04-01"),
			CreatedBy:       testUserID,
		}
	}

	t.Run("partial then full payment", func(t *testing.T) {
		f := setup(t)
		uc := newUseCase(f)

		result, err := uc.PayPurchaseOrder(context.Background(), pay(400))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PurchaseOrder.PaymentStatus != domain.PaymentPartiallyPaid {
			t.Errorf("expected Partially Paid, got %s", result.PurchaseOrder.PaymentStatus)
		}
		if result.Transaction.Description != "Payment for PO #PO-2024-001" {
			t.Errorf("unexpected description %q", result.Transaction.Description)
		}
		if result.Transaction.RelatedPOID != "po-1" || result.Transaction.TransactionType != domain.TransactionTypePOPayment {
			t.Errorf("unexpected transaction %+v", result.Transaction)
		}
		f.assertBalance(t, "ops", 9_600)

		result, err = uc.PayPurchaseOrder(context.Background(), pay(600))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.PurchaseOrder.PaymentStatus != domain.PaymentPaid {
			t.Errorf("expected Paid, got %s", result.PurchaseOrder.PaymentStatus)
		}
		f.assertBalance(t, "ops", 9_000)
	})

	t.Run("overpayment rolls back", func(t *testing.T) {
		f := setup(t)
		uc := newUseCase(f)

		if _, err := uc.PayPurchaseOrder(context.Background(), pay(1001)); !errors.Is(err, domain.ErrOverpayment) {
			t.Fatalf("expected ErrOverpayment, got %v", err)
		}
		f.assertBalance(t, "ops", 10_000)
		if f.Transactions.Count() != 0 {
			t.Errorf("expected no transaction, got %d", f.Transactions.Count())
		}
	})

	t.Run("unknown purchase order", func(t *testing.T) {
		f := setup(t)
		input := pay(10)
		input.PurchaseOrderID = "po-missing"

		if _, err := newUseCase(f).PayPurchaseOrder(context.Background(), input); !errors.Is(err, domain.ErrPurchaseOrderNotFound) {
			t.Fatalf("expected ErrPurchaseOrderNotFound, got %v", err)
		}
	})

	t.Run("missing payment date", func(t *testing.T) {
		f := setup(t)
		input := pay(10)
		input.PaymentDate = nil

		_, err := newUseCase(f).PayPurchaseOrder(context.Background(), input)
		if fields := domain.FieldsOf(err); len(fields) != 1 || fields[0] != "payment_date" {
			t.Fatalf("expected payment_date validation error, got %v", err)
		}
	})
}
