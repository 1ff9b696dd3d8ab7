package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

func seedInterestConfig(f *fixture, id string, policy domain.CalculationType, rate string, active bool) {
	_ = f.InterestConfigs.Create(context.Background(), &domain.InterestConfiguration{
		ID:              id,
		Name:            "cfg " + id,
		RatePercentage:  decimal.RequireFromString(rate),
		CalculationType: policy,
		IsActive:        active,
	})
}

func TestTransferUseCase_CreateTransfer(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateTransferInput
		expectError bool
		errorType   error
		wantSource  int64
		wantDest    int64
	}{
		{
			name: "successful transfer",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.NewFromInt(400),
				CreatedBy:            testUserID,
			},
			wantSource: 600,
			wantDest:   400,
		},
		{
			name: "reject same account transfer",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "cap",
				Amount:               decimal.NewFromInt(100),
				CreatedBy:            testUserID,
			},
			expectError: true,
			errorType:   domain.ErrSameAccount,
			wantSource:  1000,
		},
		{
			name: "reject insufficient funds",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.NewFromInt(1001),
				CreatedBy:            testUserID,
			},
			expectError: true,
			errorType:   domain.ErrInsufficientFunds,
			wantSource:  1000,
		},
		{
			name: "reject negative amount",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.NewFromInt(-5),
				CreatedBy:            testUserID,
			},
			expectError: true,
			errorType:   domain.ErrInvalidAmount,
			wantSource:  1000,
		},
		{
			name: "reject sub-cent amount",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.RequireFromString("0.001"),
				CreatedBy:            testUserID,
			},
			expectError: true,
			errorType:   domain.ErrAmountPrecision,
			wantSource:  1000,
		},
		{
			name: "reject missing fields",
			input: usecase.CreateTransferInput{
				SourceAccountID: "cap",
			},
			expectError: true,
			errorType:   domain.ErrValidation,
			wantSource:  1000,
		},
		{
			name: "reject unknown destination",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "nowhere",
				Amount:               decimal.NewFromInt(10),
				CreatedBy:            testUserID,
			},
			expectError: true,
			errorType:   domain.ErrAccountNotFound,
			wantSource:  1000,
		},
		{
			name: "reject unknown creator",
			input: usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.NewFromInt(10),
				CreatedBy:            "ghost",
			},
			expectError: true,
			errorType:   domain.ErrUserNotFound,
			wantSource:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 1000)
			f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)

			result, err := f.transfers().CreateTransfer(context.Background(), tt.input)

			if tt.expectError {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected error %v, got %v", tt.errorType, err)
				}
				if f.Transactions.Count() != 0 {
					t.Errorf("expected no transaction, got %d", f.Transactions.Count())
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if result.Transaction.Description != "Transfer from Capital Fund to Operations" {
					t.Errorf("unexpected default description %q", result.Transaction.Description)
				}
				if result.InterestPeriod != nil || result.InterestTransaction != nil {
					t.Error("expected no interest branch")
				}
			}

			f.assertBalance(t, "cap", tt.wantSource)
			f.assertBalance(t, "ops", tt.wantDest)
		})
	}
}

func TestTransferUseCase_CreateTransfer_Entries(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 1000)
	f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)

	result, err := f.transfers().CreateTransfer(context.Background(), usecase.CreateTransferInput{
		SourceAccountID:      "cap",
		DestinationAccountID: "ops",
		Amount:               decimal.NewFromInt(250),
		Description:          "seed capital",
		CreatedBy:            testUserID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	txn := result.Transaction
	if txn.TransactionType != domain.TransactionTypeTransfer {
		t.Errorf("expected type Transfer, got %s", txn.TransactionType)
	}
	if !txn.TotalAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("expected total 250, got %s", txn.TotalAmount)
	}

	creditEntry := txn.FirstEntry(domain.EntryTypeCredit)
	debitEntry := txn.FirstEntry(domain.EntryTypeDebit)
	if creditEntry == nil || debitEntry == nil {
		t.Fatal("expected one Credit and one Debit entry")
	}
	if creditEntry.AccountID != "cap" || creditEntry.RelatedEntityID != "ops" {
		t.Errorf("unexpected source entry %+v", creditEntry)
	}
	if debitEntry.AccountID != "ops" || debitEntry.RelatedEntityID != "cap" {
		t.Errorf("unexpected destination entry %+v", debitEntry)
	}
	if creditEntry.RelatedEntityType != domain.RelatedEntityTransfer {
		t.Errorf("expected related type Transfer, got %s", creditEntry.RelatedEntityType)
	}
}

func TestTransferUseCase_CreateTransfer_Interest(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 2_000_000)
	f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)
	seedInterestConfig(f, "daily", domain.CalculationDaily, "0.01", true)

	result, err := f.transfers().CreateTransfer(context.Background(), usecase.CreateTransferInput{
		SourceAccountID:      "cap",
		DestinationAccountID: "ops",
		Amount:               decimal.NewFromInt(1_000_000),
		CreatedBy:            testUserID,
		ApplyInterest:        true,
		InterestConfigID:     "daily",
		InterestStartDate:    date("2024-01-01"),
		InterestEndDate:      date("2024-01-10"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.InterestPeriod == nil || result.InterestTransaction == nil {
		t.Fatal("expected interest period and interest transaction")
	}
	if result.InterestPeriod.Status != domain.InterestPeriodActive {
		t.Errorf("expected Active period, got %s", result.InterestPeriod.Status)
	}
	if result.InterestPeriod.InitialTransferTransactionID != result.Transaction.ID {
		t.Error("expected period to reference the transfer")
	}
	if !result.InterestAmount.Equal(decimal.NewFromInt(100_000)) {
		t.Errorf("expected interest 100000, got %s", result.InterestAmount)
	}
	if result.InterestTransaction.TransactionType != domain.TransactionTypeInterestExpense {
		t.Errorf("expected Interest Expense, got %s", result.InterestTransaction.TransactionType)
	}

	entry := result.InterestTransaction.FirstEntry(domain.EntryTypeCredit)
	if entry == nil || entry.RelatedEntityID != result.InterestPeriod.ID {
		t.Fatalf("expected interest Credit entry referencing the period, got %+v", entry)
	}

	// 2,000,000 - 1,000,000 principal - 100,000 interest
	f.assertBalance(t, "cap", 900_000)
	f.assertBalance(t, "ops", 1_000_000)

	if f.InterestPeriods.Count() != 1 {
		t.Errorf("expected 1 interest period, got %d", f.InterestPeriods.Count())
	}
	if f.Transactions.Count() != 2 {
		t.Errorf("expected 2 transactions, got %d", f.Transactions.Count())
	}
}

func TestTransferUseCase_CreateTransfer_InterestMayOverdraw(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 1000)
	f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)
	seedInterestConfig(f, "monthly", domain.CalculationMonthly, "0.01", true)

	_, err := f.transfers().CreateTransfer(context.Background(), usecase.CreateTransferInput{
		SourceAccountID:      "cap",
		DestinationAccountID: "ops",
		Amount:               decimal.NewFromInt(1000),
		CreatedBy:            testUserID,
		ApplyInterest:        true,
		InterestConfigID:     "monthly",
		InterestStartDate:    date("2024-01-15"),
		InterestEndDate:      date("2024-03-15"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.assertBalance(t, "cap", -30)
}

func TestTransferUseCase_CreateTransfer_InterestSkippedForIneligibleAccounts(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("ops-1", "Operations", domain.AccountTypeOperational, 1000)
	f.seedAccount("ops-2", "Branch", domain.AccountTypeOperational, 0)

	result, err := f.transfers().CreateTransfer(context.Background(), usecase.CreateTransferInput{
		SourceAccountID:      "ops-1",
		DestinationAccountID: "ops-2",
		Amount:               decimal.NewFromInt(100),
		CreatedBy:            testUserID,
		ApplyInterest:        true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InterestPeriod != nil {
		t.Error("expected interest to be skipped between Operational accounts")
	}
}

func TestTransferUseCase_CreateTransfer_InterestFailuresRollBack(t *testing.T) {
	tests := []struct {
		name      string
		configID  string
		start     string
		end       string
		errorType error
	}{
		{"missing config id", "", "2024-01-01", "2024-01-10", domain.ErrValidation},
		{"missing dates", "daily", "", "", domain.ErrValidation},
		{"end before start", "daily", "2024-01-10", "2024-01-01", domain.ErrValidation},
		{"unknown config", "nope", "2024-01-01", "2024-01-10", domain.ErrInterestConfigInactive},
		{"inactive config", "inactive", "2024-01-01", "2024-01-10", domain.ErrInterestConfigInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 1000)
			f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)
			seedInterestConfig(f, "daily", domain.CalculationDaily, "0.01", true)
			seedInterestConfig(f, "inactive", domain.CalculationDaily, "0.01", false)

			input := usecase.CreateTransferInput{
				SourceAccountID:      "cap",
				DestinationAccountID: "ops",
				Amount:               decimal.NewFromInt(500),
				CreatedBy:            testUserID,
				ApplyInterest:        true,
				InterestConfigID:     tt.configID,
			}
			if tt.start != "" {
				input.InterestStartDate = date(tt.start)
			}
			if tt.end != "" {
				input.InterestEndDate = date(tt.end)
			}

			_, err := f.transfers().CreateTransfer(context.Background(), input)
			if !errors.Is(err, tt.errorType) {
				t.Fatalf("expected error %v, got %v", tt.errorType, err)
			}

			f.assertBalance(t, "cap", 1000)
			f.assertBalance(t, "ops", 0)
			if f.Transactions.Count() != 0 || f.Entries.Count() != 0 || f.InterestPeriods.Count() != 0 {
				t.Errorf("expected nothing persisted, got %d transactions, %d entries, %d periods",
					f.Transactions.Count(), f.Entries.Count(), f.InterestPeriods.Count())
			}
			if len(f.Outbox.EventTypes()) != 0 {
				t.Errorf("expected no events, got %v", f.Outbox.EventTypes())
			}
		})
	}
}

func TestTransferUseCase_ListAndDetail(t *testing.T) {
	f := newFixture(t)
	f.seedAccount("cap", "Capital Fund", domain.AccountTypeCapital, 5_000_000)
	f.seedAccount("ops", "Operations", domain.AccountTypeOperational, 0)
	seedInterestConfig(f, "annual", domain.CalculationAnnual, "0.01", true)

	uc := f.transfers()
	ctx := context.Background()

	plain, err := uc.CreateTransfer(ctx, usecase.CreateTransferInput{
		SourceAccountID:      "cap",
		DestinationAccountID: "ops",
		Amount:               decimal.NewFromInt(100),
		TransactionDate:      date("2024-01-01"),
		CreatedBy:            testUserID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withInterest, err := uc.CreateTransfer(ctx, usecase.CreateTransferInput{
		SourceAccountID:      "cap",
		DestinationAccountID: "ops",
		Amount:               decimal.NewFromInt(1_000_000),
		TransactionDate:      date("2024-02-01"),
		CreatedBy:            testUserID,
		ApplyInterest:        true,
		InterestConfigID:     "annual",
		InterestStartDate:    date("2024-02-01"),
		InterestEndDate:      date("2024-12-31"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	page, err := uc.ListTransfers(ctx, usecase.ListTransfersInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 transfers (interest expense excluded), got %d", len(page.Items))
	}
	if page.Items[0].ID != withInterest.Transaction.ID {
		t.Errorf("expected newest transfer first")
	}
	if page.Items[0].SourceAccountID != "cap" || page.Items[0].DestinationAccountID != "ops" {
		t.Errorf("unexpected sides %+v", page.Items[0])
	}

	detail, err := uc.GetTransferDetail(ctx, withInterest.Transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.Interest == nil {
		t.Fatal("expected interest summary")
	}
	want := decimal.RequireFromString("0.01").Div(decimal.NewFromInt(12)).Mul(decimal.NewFromInt(2_000_000))
	if !detail.Interest.Amount.Equal(want) {
		t.Errorf("expected interest %s, got %s", want, detail.Interest.Amount)
	}
	if detail.Interest.Amount.Round(0).String() != "1667" {
		t.Errorf("expected display amount 1667, got %s", detail.Interest.Amount.Round(0))
	}

	plainDetail, err := uc.GetTransferDetail(ctx, plain.Transaction.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plainDetail.Interest != nil {
		t.Error("expected no interest summary for plain transfer")
	}

	if _, err := uc.GetTransferDetail(ctx, withInterest.InterestTransaction.ID); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Errorf("expected ErrTransferNotFound for interest expense id, got %v", err)
	}
	if _, err := uc.GetTransferDetail(ctx, "missing"); !errors.Is(err, domain.ErrTransferNotFound) {
		t.Errorf("expected ErrTransferNotFound, got %v", err)
	}
}
