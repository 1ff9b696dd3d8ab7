package usecase

import (
	"errors"
	"time"
)

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultCacheTTL is how long interest configurations stay cached
	DefaultCacheTTL = 5 * time.Minute

	// IdempotencyPending is stored under an idempotency key while the first
	// request holding it is still running.
	IdempotencyPending = "processing"
)

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")
