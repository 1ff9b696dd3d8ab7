// Package testutil provides PostgreSQL fixtures for integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/infrastructure/postgres"
)

// DatabaseURLEnv names the variable that enables integration tests.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// TestDB provides a migrated test database connection.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every table. The test is skipped under -short or when the variable is unset.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dbURL := os.Getenv(DatabaseURLEnv)
	if dbURL == "" {
		t.Skipf("%s is not set", DatabaseURLEnv)
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath(t), zerolog.Nop()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, dbURL, 10, 1)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(pool.Close)

	db := &TestDB{Pool: pool, t: t}
	db.TruncateAll(context.Background())

	return db
}

func migrationsPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot locate migrations directory")
	}
	return filepath.Join(filepath.Dir(file), "..", "infrastructure", "postgres", "migrations")
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	_, err := db.Pool.Exec(ctx, `
		TRUNCATE TABLE outbox_events, account_interest_periods, transaction_entries,
			transactions, purchase_orders, interest_configurations, accounts, users CASCADE
	`)
	if err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}

// CreateUser inserts an active user with the given role.
func (db *TestDB) CreateUser(ctx context.Context, username string, role domain.Role) *domain.User {
	db.t.Helper()

	user := &domain.User{
		ID:           GenerateID(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		Role:         role,
		IsActive:     true,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, is_active) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.PasswordHash, string(user.Role), user.IsActive)
	if err != nil {
		db.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateAccount inserts an active account with a zero balance.
func (db *TestDB) CreateAccount(ctx context.Context, name string, accountType domain.AccountType) *domain.Account {
	db.t.Helper()

	account := &domain.Account{
		ID:             GenerateID(),
		Name:           name,
		Type:           accountType,
		Currency:       domain.DefaultCurrency,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO accounts (id, account_name, account_type, currency) VALUES ($1, $2, $3, $4)`,
		account.ID, account.Name, string(account.Type), account.Currency)
	if err != nil {
		db.t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

// CreateInterestConfig inserts an active interest configuration.
func (db *TestDB) CreateInterestConfig(ctx context.Context, name, rate string, calc domain.CalculationType) *domain.InterestConfiguration {
	db.t.Helper()

	config := &domain.InterestConfiguration{
		ID:              GenerateID(),
		Name:            name,
		RatePercentage:  decimal.RequireFromString(rate),
		CalculationType: calc,
		IsActive:        true,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO interest_configurations (id, config_name, rate_percentage, calculation_type) VALUES ($1, $2, $3::numeric, $4)`,
		config.ID, config.Name, rate, string(config.CalculationType))
	if err != nil {
		db.t.Fatalf("failed to create interest configuration: %v", err)
	}

	return config
}

// CreatePurchaseOrder inserts an unpaid purchase order.
func (db *TestDB) CreatePurchaseOrder(ctx context.Context, number, total string) *domain.PurchaseOrder {
	db.t.Helper()

	po := &domain.PurchaseOrder{
		ID:            GenerateID(),
		PONumber:      number,
		TotalAmount:   decimal.RequireFromString(total),
		PaidAmount:    decimal.Zero,
		PaymentStatus: domain.PaymentUnpaid,
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO purchase_orders (id, po_number, total_amount) VALUES ($1, $2, $3::numeric)`,
		po.ID, po.PONumber, total)
	if err != nil {
		db.t.Fatalf("failed to create purchase order: %v", err)
	}

	return po
}

// Balance reads an account's stored balance.
func (db *TestDB) Balance(ctx context.Context, accountID string) decimal.Decimal {
	db.t.Helper()

	var raw string
	if err := db.Pool.QueryRow(ctx, `SELECT current_balance::text FROM accounts WHERE id = $1`, accountID).Scan(&raw); err != nil {
		db.t.Fatalf("failed to read balance: %v", err)
	}

	return decimal.RequireFromString(raw)
}

// Count returns the number of rows in table.
func (db *TestDB) Count(ctx context.Context, table string) int {
	db.t.Helper()

	var n int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		db.t.Fatalf("failed to count %s: %v", table, err)
	}

	return n
}

// GenerateID generates a new ULID.
func GenerateID() string {
	return ulid.Make().String()
}
