package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/fundledger/internal/adapter/http/handler"
	"github.com/iho/fundledger/internal/adapter/http/middleware"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	EntryHandler          *handler.EntryHandler
	TransactionHandler    *handler.TransactionHandler
	TransferHandler       *handler.TransferHandler
	InterestConfigHandler *handler.InterestConfigHandler
	PurchaseOrderHandler  *handler.PurchaseOrderHandler
	LedgerHandler         *handler.LedgerHandler
	AuthHandler           *handler.AuthHandler
	HealthHandler         *handler.HealthHandler

	Logger zerolog.Logger

	// Optional components; nil disables them.
	HTTPMetrics      *middleware.HTTPMetrics
	MetricsHandler   http.Handler
	RateLimiter      *middleware.RateLimiter
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	TokenVerifier    middleware.TokenVerifier
	// OptionalVerifier attaches the caller to the context when a valid
	// token is sent but never rejects. Ignored when TokenVerifier is set.
	OptionalVerifier middleware.TokenVerifier
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Ops endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			switch {
			case cfg.TokenVerifier != nil:
				r.With(middleware.AuthMiddleware(cfg.TokenVerifier)).Get("/me", cfg.AuthHandler.Me)
			case cfg.OptionalVerifier != nil:
				r.With(middleware.OptionalAuth(cfg.OptionalVerifier)).Get("/me", cfg.AuthHandler.Me)
			}
		})

		r.Group(func(r chi.Router) {
			poster := passthrough
			admin := passthrough
			if cfg.TokenVerifier != nil {
				r.Use(middleware.AuthMiddleware(cfg.TokenVerifier))
				poster = middleware.RequireRole(domain.Role.CanPost)
				admin = middleware.RequireRole(domain.Role.CanAdminister)
			} else if cfg.OptionalVerifier != nil {
				r.Use(middleware.OptionalAuth(cfg.OptionalVerifier))
			}

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.With(admin).Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.With(admin).Put("/{id}", cfg.AccountHandler.Update)
				r.With(admin).Delete("/{id}", cfg.AccountHandler.Delete)
				r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
				r.Get("/{id}/reconciliation", cfg.LedgerHandler.ReconcileAccount)
			})

			// Interest configurations
			r.Route("/interest-configurations", func(r chi.Router) {
				r.With(admin).Post("/", cfg.InterestConfigHandler.Create)
				r.Get("/", cfg.InterestConfigHandler.List)
				r.Get("/{id}", cfg.InterestConfigHandler.Get)
				r.With(admin).Put("/{id}", cfg.InterestConfigHandler.Update)
				r.With(admin).Delete("/{id}", cfg.InterestConfigHandler.Delete)
				r.Post("/{id}/preview", cfg.InterestConfigHandler.Preview)
			})

			// Transactions and transfers
			r.Route("/transactions", func(r chi.Router) {
				r.With(poster).Post("/", cfg.TransactionHandler.Create)
				r.Get("/", cfg.TransactionHandler.List)
				r.With(poster).Post("/transfer", cfg.TransferHandler.Create)
				r.Get("/transfers", cfg.TransferHandler.List)
				r.Get("/transfers/{id}", cfg.TransferHandler.Get)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.With(poster).Put("/{id}", cfg.TransactionHandler.Update)
				r.With(poster).Delete("/{id}", cfg.TransactionHandler.Delete)
			})

			// Purchase orders
			r.With(poster).Post("/purchase-orders/{id}/payments", cfg.PurchaseOrderHandler.Pay)

			// Reconciliation
			r.Get("/reconciliation", cfg.LedgerHandler.Report)
			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}
