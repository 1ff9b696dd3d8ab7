package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// InterestConfigService defines the behavior needed by InterestConfigHandler.
type InterestConfigService interface {
	CreateInterestConfig(ctx context.Context, input usecase.CreateInterestConfigInput) (*domain.InterestConfiguration, error)
	GetInterestConfig(ctx context.Context, id string) (*domain.InterestConfiguration, error)
	ListInterestConfigs(ctx context.Context, input usecase.ListInterestConfigsInput) (*usecase.InterestConfigPage, error)
	UpdateInterestConfig(ctx context.Context, id string, input usecase.UpdateInterestConfigInput) (*domain.InterestConfiguration, error)
	DeleteInterestConfig(ctx context.Context, id string) error
	PreviewInterest(ctx context.Context, id string, input usecase.PreviewInterestInput) (*usecase.InterestPreview, error)
}

// InterestConfigHandler handles interest configuration requests.
type InterestConfigHandler struct {
	configUC InterestConfigService
}

// NewInterestConfigHandler creates a new InterestConfigHandler.
func NewInterestConfigHandler(configUC InterestConfigService) *InterestConfigHandler {
	return &InterestConfigHandler{configUC: configUC}
}

// Create creates an interest configuration.
func (h *InterestConfigHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInterestConfigRequest
	if err := decodeValidated(w, r, dto.InterestConfigSchema, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	config, err := h.configUC.CreateInterestConfig(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to create interest configuration", err)
		return
	}

	respond(w, http.StatusCreated, "interest configuration created", dto.InterestConfigFromDomain(config))
}

// Get retrieves an interest configuration.
func (h *InterestConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	config, err := h.configUC.GetInterestConfig(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, "failed to get interest configuration", err)
		return
	}

	respond(w, http.StatusOK, "interest configuration retrieved", dto.InterestConfigFromDomain(config))
}

// List lists interest configurations.
func (h *InterestConfigHandler) List(w http.ResponseWriter, r *http.Request) {
	isActive, err := parseBoolQuery(r, "is_active")
	if err != nil {
		respondError(w, r, "invalid query", err)
		return
	}

	page, err := h.configUC.ListInterestConfigs(r.Context(), usecase.ListInterestConfigsInput{
		Page:     parseIntQuery(r, "page", domain.DefaultPage),
		Limit:    parseIntQuery(r, "limit", domain.DefaultLimit),
		IsActive: isActive,
	})
	if err != nil {
		respondError(w, r, "failed to list interest configurations", err)
		return
	}

	respondPage(w, "interest configurations retrieved", dto.InterestConfigsFromDomain(page.Items), page.Page)
}

// Update applies a partial update to an interest configuration.
func (h *InterestConfigHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateInterestConfigRequest
	if err := decodeValidated(w, r, dto.InterestConfigSchema, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	config, err := h.configUC.UpdateInterestConfig(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to update interest configuration", err)
		return
	}

	respond(w, http.StatusOK, "interest configuration updated", dto.InterestConfigFromDomain(config))
}

// Delete removes an interest configuration.
func (h *InterestConfigHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.configUC.DeleteInterestConfig(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, "failed to delete interest configuration", err)
		return
	}

	respond(w, http.StatusOK, "interest configuration deleted", nil)
}

// Preview computes interest for a principal without posting anything.
func (h *InterestConfigHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewInterestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	preview, err := h.configUC.PreviewInterest(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to preview interest", err)
		return
	}

	respond(w, http.StatusOK, "interest calculated", dto.InterestPreviewFromUseCase(preview))
}
