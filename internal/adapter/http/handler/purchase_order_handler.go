package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/usecase"
)

// PurchaseOrderService defines the behavior needed by PurchaseOrderHandler.
type PurchaseOrderService interface {
	PayPurchaseOrder(ctx context.Context, input usecase.PayPurchaseOrderInput) (*usecase.PaymentResult, error)
}

// PurchaseOrderHandler records payments against purchase orders.
type PurchaseOrderHandler struct {
	poUC PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(poUC PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{poUC: poUC}
}

// Pay records a payment against the purchase order in the URL.
func (h *PurchaseOrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayPurchaseOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	result, err := h.poUC.PayPurchaseOrder(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		respondError(w, r, "failed to pay purchase order", err)
		return
	}

	respond(w, http.StatusCreated, "payment recorded", dto.PaymentFromUseCase(result))
}
