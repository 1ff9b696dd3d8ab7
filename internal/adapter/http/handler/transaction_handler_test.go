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

type transactionServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	updateFn func(ctx context.Context, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionPage, error)
}

func (s *transactionServiceStub) CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
	return s.createFn(ctx, input)
}

func (s *transactionServiceStub) UpdateTransaction(ctx context.Context, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error) {
	return s.updateFn(ctx, id, input)
}

func (s *transactionServiceStub) DeleteTransaction(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionPage, error) {
	return s.listFn(ctx, input)
}

func testTransaction() *domain.Transaction {
	return &domain.Transaction{
		ID:              "tx-1",
		TransactionDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		TransactionType: "Adjustment",
		Description:     "Opening balance",
		TotalAmount:     decimal.NewFromInt(100),
		CreatedBy:       "user-1",
		Entries: []*domain.TransactionEntry{
			{ID: "e-1", TransactionID: "tx-1", AccountID: "a", Amount: decimal.NewFromInt(50), EntryType: domain.EntryTypeDebit},
			{ID: "e-2", TransactionID: "tx-1", AccountID: "b", Amount: decimal.NewFromInt(50), EntryType: domain.EntryTypeCredit},
		},
	}
}

func TestTransactionHandler_Create(t *testing.T) {
	var captured usecase.CreateTransactionInput
	handler := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			captured = input
			return testTransaction(), nil
		},
	})

	body := `{
		"transaction_date": "2024-02-01",
		"transaction_type": "Adjustment",
		"description": "Opening balance",
		"entries": [
			{"account_id": "a", "amount": "50", "entry_type": "Debit"},
			{"account_id": "b", "amount": "50", "entry_type": "Credit"}
		]
	}`
	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(http.MethodPost, "/transactions", body, ""))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(captured.Entries) != 2 || captured.TransactionDate == nil {
		t.Fatalf("unexpected input %+v", captured)
	}

	var resp dto.TransactionResponse
	decodeData(t, decodeEnvelope(t, rec), &resp)
	if resp.TransactionDate.Format(dto.DateLayout) != "2024-02-01" || len(resp.Entries) != 2 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestTransactionHandler_Create_Unbalanced(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			return nil, domain.ErrUnbalancedTransaction
		},
	})

	rec := httptest.NewRecorder()
	handler.Create(rec, newRequest(http.MethodPost, "/transactions", `{"entries": []}`, ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Errors == nil || len(env.Errors.Fields) != 1 || env.Errors.Fields[0] != "entries" {
		t.Fatalf("expected entries field, got %+v", env.Errors)
	}
}

func TestTransactionHandler_List(t *testing.T) {
	var captured usecase.ListTransactionsInput
	handler := NewTransactionHandler(&transactionServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionPage, error) {
			captured = input
			return &usecase.TransactionPage{
				Items: []*domain.Transaction{testTransaction()},
				Page:  domain.NewPageInfo(1, 1, 10),
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	handler.List(rec, newRequest(http.MethodGet, "/transactions?type=Transfer&accountId=a&userId=user-1&startDate=2024-02-01", "", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Type != "Transfer" || captured.AccountID != "a" || captured.UserID != "user-1" {
		t.Fatalf("unexpected filters %+v", captured)
	}
	if captured.StartDate == nil || captured.EndDate != nil {
		t.Fatalf("unexpected date filters %+v", captured)
	}
	if captured.Page != domain.DefaultPage || captured.Limit != domain.DefaultLimit {
		t.Fatalf("expected default paging, got %d/%d", captured.Page, captured.Limit)
	}
}

func TestTransactionHandler_Update(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error) {
			if id != "tx-1" || input.Entries != nil {
				t.Errorf("unexpected update of %s: %+v", id, input)
			}
			return testTransaction(), nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Update(rec, newRequest(http.MethodPut, "/transactions/tx-1", `{"notes": "checked"}`, "tx-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestTransactionHandler_GetAndDelete(t *testing.T) {
	handler := NewTransactionHandler(&transactionServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Transaction, error) {
			return nil, domain.ErrTransactionNotFound
		},
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	})

	rec := httptest.NewRecorder()
	handler.Get(rec, newRequest(http.MethodGet, "/transactions/tx-1", "", "tx-1"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.Delete(rec, newRequest(http.MethodDelete, "/transactions/tx-1", "", "tx-1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "transaction deleted" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}
