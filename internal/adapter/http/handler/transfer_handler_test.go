package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

type transferServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error)
	listFn   func(ctx context.Context, input usecase.ListTransfersInput) (*usecase.TransferPage, error)
	getFn    func(ctx context.Context, id string) (*domain.Transfer, error)
}

func (s *transferServiceStub) CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
	return s.createFn(ctx, input)
}

func (s *transferServiceStub) ListTransfers(ctx context.Context, input usecase.ListTransfersInput) (*usecase.TransferPage, error) {
	return s.listFn(ctx, input)
}

func (s *transferServiceStub) GetTransferDetail(ctx context.Context, id string) (*domain.Transfer, error) {
	return s.getFn(ctx, id)
}

func TestTransferHandler_Create_WithInterest(t *testing.T) {
	var captured usecase.CreateTransferInput
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			captured = input
			return &usecase.TransferResult{
				Transaction:         &domain.Transaction{ID: "tx-1", TransactionType: domain.TransactionTypeTransfer},
				InterestPeriod:      &domain.AccountInterestPeriod{ID: "period-1", Status: domain.InterestPeriodActive},
				InterestTransaction: &domain.Transaction{ID: "tx-2", TransactionType: domain.TransactionTypeInterestExpense},
				InterestAmount:      decimal.NewFromInt(30_000),
			}, nil
		},
	})

	body := `{
		"source_account_id": "cap",
		"destination_account_id": "ops",
		"amount": 1000000,
		"apply_interest": true,
		"interest_config_id": "cfg-1",
		"interest_start_date": "2024-01-15",
		"interest_end_date": "2024-03-15"
	}`
	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(http.MethodPost, "/transactions/transfer", body, ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !captured.ApplyInterest || captured.InterestConfigID != "cfg-1" || !captured.Amount.Equal(decimal.NewFromInt(1_000_000)) {
		t.Fatalf("unexpected input %+v", captured)
	}

	env := decodeEnvelope(t, rec)
	var resp dto.TransferResultResponse
	decodeData(t, env, &resp)
	if resp.TransferTransaction.TransactionID != "tx-1" || resp.InterestTransaction.TransactionID != "tx-2" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if env.Message != "transfer completed with interest" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestTransferHandler_Create_SchemaViolation(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(http.MethodPost, "/transactions/transfer", `{"amount": [1]}`, ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors == nil || len(env.Errors.Fields) != 1 || env.Errors.Fields[0] != "amount" {
		t.Fatalf("expected amount field error, got %+v", env.Errors)
	}
}

func TestTransferHandler_Create_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"inactive config", domain.ErrInterestConfigInactive, http.StatusNotFound},
		{"missing field", domain.NewValidationError("required", "interest_config_id"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransferHandler(&transferServiceStub{
				createFn: func(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error) {
					return nil, tt.err
				},
			})

			rec := httptest.NewRecorder()
			handler.Create(rec, newRequest(http.MethodPost, "/transactions/transfer",
				`{"source_account_id": "a", "destination_account_id": "b", "amount": "5"}`, ""))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestTransferHandler_List(t *testing.T) {
	var captured usecase.ListTransfersInput
	handler := NewTransferHandler(&transferServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransfersInput) (*usecase.TransferPage, error) {
			captured = input
			return &usecase.TransferPage{
				Items: []*domain.Transfer{{ID: "tx-1", Status: domain.TransferStatusSuccess}},
				Page:  domain.NewPageInfo(1, 1, 10),
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, newRequest(http.MethodGet, "/transactions/transfers?accountId=ops&startDate=2024-01-01&endDate=2024-01-31", "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountID != "ops" || captured.StartDate == nil || captured.EndDate == nil {
		t.Fatalf("unexpected input %+v", captured)
	}
	if captured.EndDate.Day() != 31 {
		t.Fatalf("unexpected end date %v", captured.EndDate)
	}

	var items []dto.TransferResponse
	decodeData(t, decodeEnvelope(t, rec), &items)
	if len(items) != 1 || items[0].Status != "success" {
		t.Fatalf("unexpected items %+v", items)
	}
}

func TestTransferHandler_Get(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transfer, error) {
			if id != "tx-1" {
				return nil, domain.ErrTransferNotFound
			}
			return &domain.Transfer{
				ID:     "tx-1",
				Date:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Amount: decimal.NewFromInt(1_000_000),
				Status: domain.TransferStatusSuccess,
				Interest: &domain.InterestSummary{
					ConfigName:      "Monthly",
					CalculationType: domain.CalculationMonthly,
					Amount:          decimal.RequireFromString("29999.6"),
				},
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, newRequest(http.MethodGet, "/transactions/transfers/tx-1", "", "tx-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp dto.TransferResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.InterestAmount != "30000" || resp.InterestConfigName != "Monthly" {
		t.Fatalf("unexpected interest summary %+v", resp)
	}

	rec = httptest.NewRecorder()
	handler.Get(rec, newRequest(http.MethodGet, "/transactions/transfers/tx-9", "", "tx-9"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
