package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/usecase"
)

// LedgerService defines the ledger-wide checks needed by LedgerHandler.
type LedgerService interface {
	CheckConsistency(ctx context.Context) (*usecase.ConsistencyReport, error)
}

// ReconciliationService defines the reconciliation behavior needed by
// LedgerHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler handles ledger-wide operations.
type LedgerHandler struct {
	ledgerUC         LedgerService
	reconciliationUC ReconciliationService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService, reconciliationUC ReconciliationService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, reconciliationUC: reconciliationUC}
}

// CheckConsistency compares the sum of balances with the sum of entry effects.
// An inconsistent ledger is reported with 409 and the computed totals.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		if errors.Is(err, usecase.ErrInconsistentLedger) && report != nil {
			env := dto.Failure(http.StatusConflict, "ledger is inconsistent", &dto.ErrorDetail{Message: err.Error()})
			env.Data = dto.ConsistencyFromUseCase(report)
			writeJSON(w, http.StatusConflict, env)
			return
		}
		respondError(w, r, "failed to check consistency", err)
		return
	}

	respond(w, http.StatusOK, "ledger is consistent", dto.ConsistencyFromUseCase(report))
}

// ReconcileAccount compares one account's stored balance with its entries.
func (h *LedgerHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconciliationUC.ReconcileAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "failed to reconcile account", err)
		return
	}

	respond(w, http.StatusOK, "account reconciled", dto.ReconciliationFromUseCase(result))
}

// Report reconciles every account.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		respondError(w, r, "failed to generate reconciliation report", err)
		return
	}

	respond(w, http.StatusOK, "reconciliation report generated", dto.ReconciliationReportFromUseCase(report))
}
