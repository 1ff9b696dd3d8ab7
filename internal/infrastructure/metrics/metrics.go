package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transaction metrics
	TransactionsCreated *prometheus.CounterVec
	TransactionsUpdated prometheus.Counter
	TransactionsDeleted prometheus.Counter

	// Transfer metrics
	TransfersCreated      prometheus.Counter
	TransferDuration      prometheus.Histogram
	TransferErrors        *prometheus.CounterVec
	InterestPeriodsOpened prometheus.Counter
	InterestAccrued       prometheus.Counter

	// Account metrics
	AccountsCreated prometheus.Counter

	// Purchase order metrics
	PurchaseOrderPayments *prometheus.CounterVec

	// Cache metrics
	CacheRequests *prometheus.CounterVec

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates all metrics and registers them with reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Transaction metrics
		TransactionsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_transactions_created_total",
				Help: "Total number of transactions created by type",
			},
			[]string{"transaction_type"},
		),
		TransactionsUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_transactions_updated_total",
			Help: "Total number of transactions updated",
		}),
		TransactionsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_transactions_deleted_total",
			Help: "Total number of transactions deleted",
		}),

		// Transfer metrics
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_transfers_created_total",
			Help: "Total number of transfers created",
		}),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fundledger_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),
		InterestPeriodsOpened: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_interest_periods_opened_total",
			Help: "Total number of interest periods opened by transfers",
		}),
		InterestAccrued: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_interest_accrued_total",
			Help: "Sum of interest amounts posted by transfers",
		}),

		// Account metrics
		AccountsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),

		// Purchase order metrics
		PurchaseOrderPayments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_purchase_order_payments_total",
				Help: "Total purchase order payments by resulting payment status",
			},
			[]string{"payment_status"},
		),

		// Cache metrics
		CacheRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_cache_requests_total",
				Help: "Total cache lookups by result",
			},
			[]string{"result"},
		),

		// Outbox metrics
		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "fundledger_outbox_errors_total",
			Help: "Total outbox publish failures",
		}),

		// Authentication metrics
		AuthAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fundledger_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"path"},
		),
	}
}
