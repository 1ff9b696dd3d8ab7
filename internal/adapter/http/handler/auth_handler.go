package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/fundledger/internal/adapter/http/dto"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/usecase"
)

// UserService defines the behavior needed by AuthHandler.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenIssuer issues bearer tokens for authenticated users.
type TokenIssuer interface {
	Generate(user *domain.User) (string, error)
	ExpiresIn() time.Duration
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	userUC  UserService
	tokens  TokenIssuer
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new auth handler. m may be nil.
func NewAuthHandler(userUC UserService, tokens TokenIssuer, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		userUC:  userUC,
		tokens:  tokens,
		metrics: m,
	}
}

// Register creates a user.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	user, err := h.userUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		respondError(w, r, "failed to register user", err)
		return
	}

	respond(w, http.StatusCreated, "user registered", dto.UserFromDomain(user))
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, "invalid request body", err)
		return
	}

	user, err := h.userUC.Authenticate(r.Context(), usecase.AuthenticateInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		h.recordAttempt("failure")
		respondError(w, r, "login failed", err)
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		h.recordAttempt("error")
		respondError(w, r, "failed to generate token", err)
		return
	}
	h.recordAttempt("success")

	respond(w, http.StatusOK, "login successful", dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int64(h.tokens.ExpiresIn().Seconds()),
		User:      dto.UserFromDomain(user),
	})
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	current, ok := domain.UserFromContext(r.Context())
	if !ok {
		respondError(w, r, "unauthorized", domain.ErrUnauthorized)
		return
	}

	user, err := h.userUC.GetUser(r.Context(), current.ID)
	if err != nil {
		respondError(w, r, "failed to get user", err)
		return
	}

	respond(w, http.StatusOK, "user retrieved", dto.UserFromDomain(user))
}

func (h *AuthHandler) recordAttempt(status string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}
