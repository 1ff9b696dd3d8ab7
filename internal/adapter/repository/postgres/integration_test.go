package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/adapter/repository/postgres"
	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/testutil"
	"github.com/iho/fundledger/internal/usecase"
)

type services struct {
	db             *testutil.TestDB
	transactions   *usecase.TransactionUseCase
	transfers      *usecase.TransferUseCase
	purchaseOrders *usecase.PurchaseOrderUseCase
	ledger         *usecase.LedgerUseCase
	reconciliation *usecase.ReconciliationUseCase
	user           *domain.User
}

func newServices(t *testing.T) *services {
	t.Helper()

	db := testutil.NewTestDB(t)
	pool := db.Pool

	txManager := postgres.NewTxManager(pool, pgx.ReadCommitted)
	accountRepo := postgres.NewAccountRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	ledgerRepo := postgres.NewLedgerRepository(pool)
	idGen := postgres.NewULIDGenerator()

	return &services{
		db: db,
		transactions: usecase.NewTransactionUseCase(
			txManager, accountRepo, transactionRepo, entryRepo, userRepo, outboxRepo, idGen, nil,
			usecase.TransactionConfig{StrictBalancing: false},
		),
		transfers: usecase.NewTransferUseCase(
			txManager, accountRepo, transactionRepo, entryRepo, userRepo,
			postgres.NewInterestConfigRepository(pool), postgres.NewInterestPeriodRepository(pool),
			outboxRepo, idGen, nil,
		),
		purchaseOrders: usecase.NewPurchaseOrderUseCase(
			txManager, accountRepo, transactionRepo, entryRepo, userRepo,
			postgres.NewPurchaseOrderRepository(), outboxRepo, idGen, nil,
		),
		ledger:         usecase.NewLedgerUseCase(ledgerRepo),
		reconciliation: usecase.NewReconciliationUseCase(accountRepo, entryRepo, ledgerRepo),
		user:           db.CreateUser(context.Background(), "finance", domain.RoleFinance),
	}
}

func day(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

// fund posts a single Debit so the account balance is backed by an entry.
func (s *services) fund(t *testing.T, account *domain.Account, amount int64) {
	t.Helper()

	_, err := s.transactions.CreateTransaction(context.Background(), usecase.CreateTransactionInput{
		TransactionDate: day("2024-01-01"),
		TransactionType: "Opening Balance",
		Description:     "Opening balance for " + account.Name,
		CreatedBy:       s.user.ID,
		Entries: []usecase.EntryInput{
			{AccountID: account.ID, Amount: decimal.NewFromInt(amount), EntryType: domain.EntryTypeDebit},
		},
	})
	if err != nil {
		t.Fatalf("failed to fund %s: %v", account.Name, err)
	}
}

func (s *services) assertBalance(t *testing.T, accountID string, want int64) {
	t.Helper()

	if got := s.db.Balance(context.Background(), accountID); !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("balance of %s: expected %d, got %s", accountID, want, got)
	}
}

func (s *services) assertConsistent(t *testing.T) {
	t.Helper()

	report, err := s.ledger.CheckConsistency(context.Background())
	if err != nil {
		t.Fatalf("ledger is inconsistent: %v (%+v)", err, report)
	}
}

func TestTransferWithInterest_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	capital := s.db.CreateAccount(ctx, "Investor Capital", domain.AccountTypeCapital)
	ops := s.db.CreateAccount(ctx, "Operations", domain.AccountTypeOperational)
	config := s.db.CreateInterestConfig(ctx, "Monthly 1%", "0.0100", domain.CalculationMonthly)
	s.fund(t, capital, 5_000_000)

	result, err := s.transfers.CreateTransfer(ctx, usecase.CreateTransferInput{
		SourceAccountID:      capital.ID,
		DestinationAccountID: ops.ID,
		Amount:               decimal.NewFromInt(1_000_000),
		TransactionDate:      day("2024-01-15"),
		CreatedBy:            s.user.ID,
		ApplyInterest:        true,
		InterestConfigID:     config.ID,
		InterestStartDate:    day("2024-01-15"),
		InterestEndDate:      day("2024-03-15"),
	})
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}

	if result.InterestPeriod == nil || result.InterestTransaction == nil {
		t.Fatalf("expected an interest period and transaction, got %+v", result)
	}
	if !result.InterestAmount.Equal(decimal.NewFromInt(30_000)) {
		t.Errorf("expected interest 30000, got %s", result.InterestAmount)
	}

	s.assertBalance(t, capital.ID, 3_970_000)
	s.assertBalance(t, ops.ID, 1_000_000)
	s.assertConsistent(t)

	detail, err := s.transfers.GetTransferDetail(ctx, result.Transaction.ID)
	if err != nil {
		t.Fatalf("get transfer detail: %v", err)
	}
	if detail.SourceAccountID != capital.ID || detail.DestinationAccountID != ops.ID {
		t.Errorf("unexpected transfer sides %+v", detail)
	}
	if detail.Interest == nil || !detail.Interest.Amount.Equal(decimal.NewFromInt(30_000)) {
		t.Errorf("unexpected interest summary %+v", detail.Interest)
	}

	page, err := s.transfers.ListTransfers(ctx, usecase.ListTransfersInput{Page: 1, Limit: 10, AccountID: ops.ID})
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(page.Items) != 1 || page.Page.TotalItems != 1 {
		t.Errorf("expected one transfer, got %d (%+v)", len(page.Items), page.Page)
	}

	if n := s.db.Count(ctx, "outbox_events"); n == 0 {
		t.Error("expected outbox events to be written")
	}
}

func TestTransferRollsBackOnInsufficientFunds_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	capital := s.db.CreateAccount(ctx, "Small Capital", domain.AccountTypeCapital)
	ops := s.db.CreateAccount(ctx, "Operations", domain.AccountTypeOperational)
	s.fund(t, capital, 100)

	_, err := s.transfers.CreateTransfer(ctx, usecase.CreateTransferInput{
		SourceAccountID:      capital.ID,
		DestinationAccountID: ops.ID,
		Amount:               decimal.NewFromInt(101),
		CreatedBy:            s.user.ID,
	})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	s.assertBalance(t, capital.ID, 100)
	s.assertBalance(t, ops.ID, 0)
	if n := s.db.Count(ctx, "transactions"); n != 1 {
		t.Errorf("expected only the funding transaction, got %d", n)
	}
}

func TestConcurrentTransfersKeepBalances_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	capital := s.db.CreateAccount(ctx, "Shared Capital", domain.AccountTypeCapital)
	ops := s.db.CreateAccount(ctx, "Operations", domain.AccountTypeOperational)
	s.fund(t, capital, 1_000)

	const workers = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.transfers.CreateTransfer(ctx, usecase.CreateTransferInput{
				SourceAccountID:      capital.ID,
				DestinationAccountID: ops.ID,
				Amount:               decimal.NewFromInt(100),
				CreatedBy:            s.user.ID,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else if !errors.Is(err, domain.ErrInsufficientFunds) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if succeeded != 10 {
		t.Errorf("expected exactly 10 transfers to fit the balance, got %d", succeeded)
	}
	s.assertBalance(t, capital.ID, 0)
	s.assertBalance(t, ops.ID, 1_000)
	s.assertConsistent(t)
}

func TestDeleteTransactionReversesBalances_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	cash := s.db.CreateAccount(ctx, "Cash", domain.AccountTypeOperational)
	capital := s.db.CreateAccount(ctx, "Capital", domain.AccountTypeCapital)

	txn, err := s.transactions.CreateTransaction(ctx, usecase.CreateTransactionInput{
		TransactionDate: day("2024-02-01"),
		TransactionType: "Capital Injection",
		CreatedBy:       s.user.ID,
		Entries: []usecase.EntryInput{
			{AccountID: cash.ID, Amount: decimal.NewFromInt(500), EntryType: domain.EntryTypeDebit},
			{AccountID: capital.ID, Amount: decimal.NewFromInt(500), EntryType: domain.EntryTypeCredit},
		},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	s.assertBalance(t, cash.ID, 500)
	s.assertBalance(t, capital.ID, -500)

	if err := s.transactions.DeleteTransaction(ctx, txn.ID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}

	s.assertBalance(t, cash.ID, 0)
	s.assertBalance(t, capital.ID, 0)
	if n := s.db.Count(ctx, "transaction_entries"); n != 0 {
		t.Errorf("expected entries to cascade, got %d", n)
	}
	if _, err := s.transactions.GetTransaction(ctx, txn.ID); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Errorf("expected ErrTransactionNotFound, got %v", err)
	}
	s.assertConsistent(t)
}

func TestPurchaseOrderPayment_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	ops := s.db.CreateAccount(ctx, "Operations", domain.AccountTypeOperational)
	s.fund(t, ops, 10_000)
	po := s.db.CreatePurchaseOrder(ctx, "PO-2024-001", "1000")

	pay := func(amount int64) (*usecase.PaymentResult, error) {
		return s.purchaseOrders.PayPurchaseOrder(ctx, usecase.PayPurchaseOrderInput{
			PurchaseOrderID: po.ID,
			AccountID:       ops.ID,
			Amount:          decimal.NewFromInt(amount),
			PaymentDate:     day("2024-04-01"),
			CreatedBy:       s.user.ID,
		})
	}

	result, err := pay(400)
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if result.PurchaseOrder.PaymentStatus != domain.PaymentPartiallyPaid {
		t.Errorf("expected Partially Paid, got %s", result.PurchaseOrder.PaymentStatus)
	}

	if _, err := pay(601); !errors.Is(err, domain.ErrOverpayment) {
		t.Fatalf("expected ErrOverpayment, got %v", err)
	}
	s.assertBalance(t, ops.ID, 9_600)

	result, err = pay(600)
	if err != nil {
		t.Fatalf("final payment: %v", err)
	}
	if result.PurchaseOrder.PaymentStatus != domain.PaymentPaid {
		t.Errorf("expected Paid, got %s", result.PurchaseOrder.PaymentStatus)
	}
	s.assertBalance(t, ops.ID, 9_000)

	recon, err := s.reconciliation.ReconcileAccount(ctx, ops.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if !recon.IsReconciled {
		t.Errorf("expected account to reconcile, got %+v", recon)
	}
}

func TestUpdateTransactionHeader_Integration(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	cash := s.db.CreateAccount(ctx, "Cash", domain.AccountTypeOperational)
	capital := s.db.CreateAccount(ctx, "Capital", domain.AccountTypeCapital)
	po := s.db.CreatePurchaseOrder(ctx, "PO-9", "500")

	postedAt := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	txn, err := s.transactions.CreateTransaction(ctx, usecase.CreateTransactionInput{
		TransactionDate: &postedAt,
		TransactionType: "Expense",
		CreatedBy:       s.user.ID,
		Entries: []usecase.EntryInput{
			{AccountID: cash.ID, Amount: decimal.NewFromInt(300), EntryType: domain.EntryTypeDebit},
			{AccountID: capital.ID, Amount: decimal.NewFromInt(300), EntryType: domain.EntryTypeCredit},
		},
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	description := "linked to supplier order"
	updated, err := s.transactions.UpdateTransaction(ctx, txn.ID, usecase.UpdateTransactionInput{
		Description: &description,
		RelatedPOID: &po.ID,
	})
	if err != nil {
		t.Fatalf("update transaction: %v", err)
	}
	if updated.RelatedPOID != po.ID || updated.Description != description {
		t.Errorf("unexpected header after update: %+v", updated)
	}

	stored, err := s.transactions.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("get transaction: %v", err)
	}
	if !stored.TransactionDate.Equal(postedAt) {
		t.Errorf("expected transaction time %s to round-trip, got %s", postedAt, stored.TransactionDate)
	}
	if stored.RelatedPOID != po.ID {
		t.Errorf("expected related PO %s on read, got %q", po.ID, stored.RelatedPOID)
	}

	var column *string
	if err := s.db.Pool.QueryRow(ctx, "SELECT related_po_id FROM transactions WHERE id = $1", txn.ID).Scan(&column); err != nil {
		t.Fatalf("read related_po_id: %v", err)
	}
	if column == nil || *column != po.ID {
		t.Errorf("expected related_po_id %s to be stored, got %v", po.ID, column)
	}

	if n := s.db.Count(ctx, "transaction_entries"); n != 2 {
		t.Errorf("expected header edit to keep 2 entries, got %d", n)
	}
	s.assertBalance(t, cash.ID, 300)
	s.assertBalance(t, capital.ID, -300)

	missing := "01J0000000000000000000NOPE"
	if _, err := s.transactions.UpdateTransaction(ctx, txn.ID, usecase.UpdateTransactionInput{RelatedPOID: &missing}); !errors.Is(err, domain.ErrPurchaseOrderNotFound) {
		t.Errorf("expected ErrPurchaseOrderNotFound, got %v", err)
	}
	s.assertConsistent(t)
}
