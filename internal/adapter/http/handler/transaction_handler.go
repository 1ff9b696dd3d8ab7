package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) (*usecase.TransactionPage, error)
}

// TransactionHandler handles ledger transaction requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create posts a transaction with its entries.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if err := decodeValidated(w, r, dto.TransactionSchema, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	txn, err := h.transactionUC.CreateTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to create transaction", err)
		return
	}

	respond(w, http.StatusCreated, "transaction created", dto.TransactionFromDomain(txn))
}

// Get returns a transaction header with its entries.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	txn, err := h.transactionUC.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "failed to get transaction", err)
		return
	}

	respond(w, http.StatusOK, "transaction retrieved", dto.TransactionFromDomain(txn))
}

// List lists transactions newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	startDate, err := parseDateQuery(r, "startDate")
	if err != nil {
		respondError(w, r, "invalid query", err)
		return
	}
	endDate, err := parseDateQuery(r, "endDate")
	if err != nil {
		respondError(w, r, "invalid query", err)
		return
	}

	q := r.URL.Query()
	page, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		Page:      parseIntQuery(r, "page", domain.DefaultPage),
		Limit:     parseIntQuery(r, "limit", domain.DefaultLimit),
		Type:      q.Get("type"),
		AccountID: q.Get("accountId"),
		UserID:    q.Get("userId"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(w, r, "failed to list transactions", err)
		return
	}

	respondPage(w, "transactions retrieved", dto.TransactionsFromDomain(page.Items), page.Page)
}

// Update replaces a transaction's header fields and, when given, its entries.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTransactionRequest
	if err := decodeValidated(w, r, dto.TransactionSchema, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	txn, err := h.transactionUC.UpdateTransaction(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to update transaction", err)
		return
	}

	respond(w, http.StatusOK, "transaction updated", dto.TransactionFromDomain(txn))
}

// Delete removes a transaction and reverses its entries.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.transactionUC.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, "failed to delete transaction", err)
		return
	}

	respond(w, http.StatusOK, "transaction deleted", nil)
}
