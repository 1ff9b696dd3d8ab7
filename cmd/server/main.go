package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/fundledger/internal/adapter/http"
	"github.com/iho/fundledger/internal/adapter/http/handler"
	"github.com/iho/fundledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/fundledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fundledger/internal/adapter/repository/redis"
	"github.com/iho/fundledger/internal/infrastructure/auth"
	"github.com/iho/fundledger/internal/infrastructure/config"
	"github.com/iho/fundledger/internal/infrastructure/eventpublisher"
	"github.com/iho/fundledger/internal/infrastructure/logger"
	"github.com/iho/fundledger/internal/infrastructure/metrics"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
	"github.com/iho/fundledger/internal/infrastructure/redis"
	"github.com/iho/fundledger/internal/usecase"
)

const (
	redisConnectTimeout  = 10 * time.Second
	limiterSweepInterval = time.Minute
	limiterMaxIdle       = 10 * time.Minute
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New(logger.Config{Level: "info", Format: "json"})
		bootstrap.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return errors.New("AUTH_ENABLED requires JWT_SECRET")
	}

	isoLevel, err := postgresRepo.ParseIsolationLevel(cfg.DatabaseIsolationLevel)
	if err != nil {
		return err
	}

	if cfg.MigrateOnStart {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log); err != nil {
			return err
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseConnectTimeout,
	})
	if err != nil {
		return err
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	m := metrics.New()

	healthChecks := []handler.HealthCheck{{Name: "postgres", Check: pool.Ping}}

	// Redis backs the idempotency store and the interest configuration
	// cache; both are skipped when it is disabled.
	var (
		cache            usecase.Cache
		idempotencyStore usecase.IdempotencyStore
	)
	if cfg.RedisEnabled {
		redisClient, err := redis.NewClientWithRetry(ctx, cfg.RedisURL, redisConnectTimeout)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		log.Info().Msg("connected to redis")

		cache = redisRepo.NewCache(redisClient, m)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		})
	}

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool, isoLevel)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	entryRepo := postgresRepo.NewEntryRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	interestConfigRepo := postgresRepo.NewInterestConfigRepository(pool)
	interestPeriodRepo := postgresRepo.NewInterestPeriodRepository(pool)
	poRepo := postgresRepo.NewPurchaseOrderRepository()
	ledgerRepo := postgresRepo.NewLedgerRepository(pool)
	idGen := postgresRepo.NewULIDGenerator()

	var outboxRepo usecase.OutboxRepository = postgresRepo.NewNullOutboxRepository()
	if cfg.OutboxEnabled {
		outboxRepo = postgresRepo.NewOutboxRepository(pool)
	}

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, outboxRepo, idGen, m)
	entryUC := usecase.NewEntryUseCase(accountRepo, entryRepo)
	transactionUC := usecase.NewTransactionUseCase(
		txManager, accountRepo, transactionRepo, entryRepo, userRepo, outboxRepo, idGen, m,
		usecase.TransactionConfig{StrictBalancing: cfg.LedgerStrictBalancing},
	)
	transferUC := usecase.NewTransferUseCase(
		txManager, accountRepo, transactionRepo, entryRepo, userRepo,
		interestConfigRepo, interestPeriodRepo, outboxRepo, idGen, m,
	)
	interestConfigUC := usecase.NewInterestConfigUseCase(interestConfigRepo, cache, cfg.CacheTTL, idGen, log)
	poUC := usecase.NewPurchaseOrderUseCase(
		txManager, accountRepo, transactionRepo, entryRepo, userRepo, poRepo, outboxRepo, idGen, m,
	)
	ledgerUC := usecase.NewLedgerUseCase(ledgerRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, entryRepo, ledgerRepo)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		EntryHandler:          handler.NewEntryHandler(entryUC),
		TransactionHandler:    handler.NewTransactionHandler(transactionUC),
		TransferHandler:       handler.NewTransferHandler(transferUC),
		InterestConfigHandler: handler.NewInterestConfigHandler(interestConfigUC),
		PurchaseOrderHandler:  handler.NewPurchaseOrderHandler(poUC),
		LedgerHandler:         handler.NewLedgerHandler(ledgerUC, reconciliationUC),
		AuthHandler:           handler.NewAuthHandler(userUC, jwtManager, m),
		HealthHandler:         handler.NewHealthHandler(healthChecks...),
		Logger:                log,
		HTTPMetrics:           middleware.NewHTTPMetrics(prometheus.DefaultRegisterer),
		MetricsHandler:        promhttp.Handler(),
		IdempotencyStore:      idempotencyStore,
		IdempotencyTTL:        cfg.IdempotencyTTL,
	}

	switch {
	case cfg.AuthEnabled:
		routerCfg.TokenVerifier = jwtManager
		log.Info().Msg("authentication enabled")
	case cfg.JWTSecret != "":
		// Tokens are honoured for created_by defaults but not required.
		routerCfg.OptionalVerifier = jwtManager
	}

	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)
		routerCfg.RateLimiter = limiter
		go limiter.Run(ctx, limiterSweepInterval, limiterMaxIdle)
	}

	if cfg.OutboxEnabled {
		publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: outboxRepo,
			Publisher:  eventpublisher.NewLogPublisher(log),
			Logger:     log,
			Metrics:    m,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
		})
		go func() {
			if err := publisher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Msg("outbox publisher stopped")
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
