package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// EntryService defines the behavior needed by EntryHandler.
type EntryService interface {
	GetEntriesByAccount(ctx context.Context, input usecase.GetEntriesByAccountInput) (*usecase.EntryPage, error)
}

// EntryHandler serves ledger entry queries.
type EntryHandler struct {
	entryUC EntryService
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC EntryService) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// ListByAccount lists an account's entries, newest first.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	page, err := h.entryUC.GetEntriesByAccount(r.Context(), usecase.GetEntriesByAccountInput{
		AccountID: chi.URLParam(r, "id"),
		Page:      parseIntQuery(r, "page", domain.DefaultPage),
		Limit:     parseIntQuery(r, "limit", domain.DefaultLimit),
	})
	if err != nil {
		respondError(w, r, "failed to list entries", err)
		return
	}

	respondPage(w, "entries retrieved", dto.EntriesFromDomain(page.Items), page.Page)
}
