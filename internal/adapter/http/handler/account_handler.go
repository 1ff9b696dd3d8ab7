package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context, input usecase.ListAccountsInput) (*usecase.AccountPage, error)
	UpdateAccount(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to create account", err)
		return
	}

	respond(w, http.StatusCreated, "account created", dto.AccountFromDomain(account))
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "failed to get account", err)
		return
	}

	respond(w, http.StatusOK, "account retrieved", dto.AccountFromDomain(account))
}

// List lists accounts.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	isActive, err := parseBoolQuery(r, "is_active")
	if err != nil {
		respondError(w, r, "invalid query", err)
		return
	}

	page, err := h.accountUC.ListAccounts(r.Context(), usecase.ListAccountsInput{
		Page:     parseIntQuery(r, "page", domain.DefaultPage),
		Limit:    parseIntQuery(r, "limit", domain.DefaultLimit),
		Type:     domain.AccountType(r.URL.Query().Get("type")),
		IsActive: isActive,
	})
	if err != nil {
		respondError(w, r, "failed to list accounts", err)
		return
	}

	respondPage(w, "accounts retrieved", dto.AccountsFromDomain(page.Items), page.Page)
}

// Update applies a partial update to an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to update account", err)
		return
	}

	respond(w, http.StatusOK, "account updated", dto.AccountFromDomain(account))
}

// Delete removes an account that no entry or interest period references.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, "failed to delete account", err)
		return
	}

	respond(w, http.StatusOK, "account deleted", nil)
}
