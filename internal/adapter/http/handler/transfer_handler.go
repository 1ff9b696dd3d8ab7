package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	CreateTransfer(ctx context.Context, input usecase.CreateTransferInput) (*usecase.TransferResult, error)
	ListTransfers(ctx context.Context, input usecase.ListTransfersInput) (*usecase.TransferPage, error)
	GetTransferDetail(ctx context.Context, id string) (*domain.Transfer, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService) *TransferHandler {
	return &TransferHandler{transferUC: transferUC}
}

// Create moves funds between two accounts, optionally opening an interest
// period.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := decodeValidated(w, r, dto.TransferSchema, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	result, err := h.transferUC.CreateTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to create transfer", err)
		return
	}

	message := "transfer completed"
	if result.InterestPeriod != nil {
		message = "transfer completed with interest"
	}
	respond(w, http.StatusCreated, message, dto.TransferResultFromUseCase(result))
}

// List lists transfers newest first.
func (h *TransferHandler) List(w http.ResponseWriter, r *http.Request) {
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

	page, err := h.transferUC.ListTransfers(r.Context(), usecase.ListTransfersInput{
		Page:      parseIntQuery(r, "page", domain.DefaultPage),
		Limit:     parseIntQuery(r, "limit", domain.DefaultLimit),
		AccountID: r.URL.Query().Get("accountId"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(w, r, "failed to list transfers", err)
		return
	}

	respondPage(w, "transfers retrieved", dto.TransfersFromDomain(page.Items), page.Page)
}

// Get returns a transfer with its interest summary, if any.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	transfer, err := h.transferUC.GetTransferDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "failed to get transfer", err)
		return
	}

	respond(w, http.StatusOK, "transfer retrieved", dto.TransferDetailFromDomain(transfer))
}
