package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/fundledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/fundledger/internal/adapter/http/middleware"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/auth"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)

	key := "POST:/api/v1/accounts/:key-123"
	store.EXPECT().CheckAndSet(gomock.Any(), key, nil, time.Hour).Return(false, nil, nil)
	store.EXPECT().Update(gomock.Any(), key, gomock.Any(), time.Hour).Return(nil)

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"account_name":"Main","account_type":"Operational"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestNewRouter_AuthGroups(t *testing.T) {
	tokens := auth.NewJWTManager("router-secret", time.Hour)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.TokenVerifier = tokens
	}))

	tokenFor := func(role domain.Role) string {
		token, err := tokens.Generate(&domain.User{ID: "user-" + string(role), Username: string(role), Role: role, IsActive: true})
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		return token
	}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		role   domain.Role
		want   int
	}{
		{"anonymous read", http.MethodGet, "/api/v1/accounts/", "", "", http.StatusUnauthorized},
		{"viewer read", http.MethodGet, "/api/v1/accounts/", "", domain.RoleViewer, http.StatusOK},
		{"viewer creates account", http.MethodPost, "/api/v1/accounts/", `{"account_name":"A","account_type":"Operational"}`, domain.RoleViewer, http.StatusForbidden},
		{"finance creates account", http.MethodPost, "/api/v1/accounts/", `{"account_name":"A","account_type":"Operational"}`, domain.RoleFinance, http.StatusForbidden},
		{"admin creates account", http.MethodPost, "/api/v1/accounts/", `{"account_name":"A","account_type":"Operational"}`, domain.RoleAdmin, http.StatusCreated},
		{"viewer deletes transaction", http.MethodDelete, "/api/v1/transactions/tx-1", "", domain.RoleViewer, http.StatusForbidden},
		{"login stays public", http.MethodPost, "/api/v1/auth/login", "", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.role != "" {
				req.Header.Set("Authorization", "Bearer "+tokenFor(tt.role))
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNewRouter_OptionalAuthDoesNotEnforceRoles(t *testing.T) {
	tokens := auth.NewJWTManager("router-secret", time.Hour)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.OptionalVerifier = tokens
	}))

	viewer, err := tokens.Generate(&domain.User{ID: "user-viewer", Role: domain.RoleViewer, IsActive: true})
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	tests := []struct {
		name   string
		method string
		target string
		body   string
		token  string
		want   int
	}{
		{"anonymous read", http.MethodGet, "/api/v1/accounts/", "", "", http.StatusOK},
		{"viewer creates account", http.MethodPost, "/api/v1/accounts/", `{"account_name":"A","account_type":"Operational"}`, viewer, http.StatusCreated},
		{"broken token is ignored", http.MethodGet, "/api/v1/accounts/", "", "broken", http.StatusOK},
		{"me without token", http.MethodGet, "/api/v1/auth/me", "", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.MetricsHandler = http.NotFoundHandler()
	}))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/auth/register",
		"POST /api/v1/auth/login",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{id}",
		"PUT /api/v1/accounts/{id}",
		"DELETE /api/v1/accounts/{id}",
		"GET /api/v1/accounts/{id}/entries",
		"GET /api/v1/accounts/{id}/reconciliation",
		"POST /api/v1/interest-configurations/",
		"GET /api/v1/interest-configurations/{id}",
		"POST /api/v1/interest-configurations/{id}/preview",
		"POST /api/v1/transactions/",
		"GET /api/v1/transactions/",
		"GET /api/v1/transactions/{id}",
		"PUT /api/v1/transactions/{id}",
		"DELETE /api/v1/transactions/{id}",
		"POST /api/v1/transactions/transfer",
		"GET /api/v1/transactions/transfers",
		"GET /api/v1/transactions/transfers/{id}",
		"POST /api/v1/purchase-orders/{id}/payments",
		"GET /api/v1/reconciliation",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Errorf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:         handler.NewHealthHandler(),
		AccountHandler:        handler.NewAccountHandler(stubAccountService{}),
		EntryHandler:          handler.NewEntryHandler(nil),
		TransactionHandler:    handler.NewTransactionHandler(nil),
		TransferHandler:       handler.NewTransferHandler(nil),
		InterestConfigHandler: handler.NewInterestConfigHandler(nil),
		PurchaseOrderHandler:  handler.NewPurchaseOrderHandler(nil),
		LedgerHandler:         handler.NewLedgerHandler(nil, nil),
		AuthHandler:           handler.NewAuthHandler(nil, nil, nil),
		Logger:                zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubAccountService struct{}

func (stubAccountService) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: "acc", Name: input.Name, Type: input.AccountType}, nil
}

func (stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) (*usecase.AccountPage, error) {
	return &usecase.AccountPage{Items: []*domain.Account{}}, nil
}

func (stubAccountService) UpdateAccount(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return &domain.Account{ID: id}, nil
}

func (stubAccountService) DeleteAccount(ctx context.Context, id string) error {
	return nil
}
