package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

type purchaseOrderServiceStub struct {
	payFn func(ctx context.Context, input usecase.PayPurchaseOrderInput) (*usecase.PaymentResult, error)
}

func (s *purchaseOrderServiceStub) PayPurchaseOrder(ctx context.Context, input usecase.PayPurchaseOrderInput) (*usecase.PaymentResult, error) {
	return s.payFn(ctx, input)
}

func TestPurchaseOrderHandler_Pay(t *testing.T) {
	handler := NewPurchaseOrderHandler(&purchaseOrderServiceStub{
		payFn: func(ctx context.Context, input usecase.PayPurchaseOrderInput) (*usecase.PaymentResult, error) {
			if input.PurchaseOrderID != "po-1" || input.PaymentDate == nil {
				t.Errorf("unexpected input %+v", input)
			}
			if input.Amount.GreaterThan(decimal.NewFromInt(1000)) {
				return nil, domain.ErrOverpayment
			}
			return &usecase.PaymentResult{
				PurchaseOrder: &domain.PurchaseOrder{
					ID:            "po-1",
					PONumber:      "PO-2024-001",
					TotalAmount:   decimal.NewFromInt(1000),
					PaidAmount:    input.Amount,
					PaymentStatus: domain.PaymentPartiallyPaid,
				},
				Transaction: &domain.Transaction{ID: "tx-1", TransactionType: domain.TransactionTypePOPayment, RelatedPOID: "po-1"},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Pay(rec, newRequest(http.MethodPost, "/purchase-orders/po-1/payments",
		`{"account_id": "ops", "amount": 400, "payment_date": "2024-04-01"}`, "po-1"))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dto.PaymentResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.PurchaseOrder.PaymentStatus != "Partially Paid" || resp.Transaction.RelatedPOID != "po-1" {
		t.Fatalf("unexpected response %+v", resp)
	}

	rec = httptest.NewRecorder()
	handler.Pay(rec, newRequest(http.MethodPost, "/purchase-orders/po-1/payments",
		`{"account_id": "ops", "amount": 1001, "payment_date": "2024-04-01"}`, "po-1"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
