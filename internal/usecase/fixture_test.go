package usecase_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
	"github.com/iho/fundledger/internal/usecase/mocks"
)

const testUserID = "user-1"

type fixture struct {
	*mocks.Ledger
	users *mocks.MockUserRepository
}

// newFixture returns an empty in-memory ledger whose user store knows only testUserID.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	users.EXPECT().GetByID(gomock.Any(), testUserID).
		Return(&domain.User{ID: testUserID, Username: "finance", Role: domain.RoleFinance, IsActive: true}, nil).
		AnyTimes()
	users.EXPECT().GetByID(gomock.Any(), gomock.Not(testUserID)).
		Return(nil, domain.ErrUserNotFound).
		AnyTimes()

	return &fixture{Ledger: mocks.NewLedger(), users: users}
}

func (f *fixture) seedAccount(id, name string, typ domain.AccountType, balance int64) {
	f.Accounts.Seed(&domain.Account{
		ID:             id,
		Name:           name,
		Type:           typ,
		Currency:       domain.DefaultCurrency,
		CurrentBalance: decimal.NewFromInt(balance),
		IsActive:       true,
	})
}

func (f *fixture) transactions(strict bool) *usecase.TransactionUseCase {
	return usecase.NewTransactionUseCase(
		f.TxManager, f.Accounts, f.Transactions, f.Entries, f.users, f.Outbox, f.IDGen, nil,
		usecase.TransactionConfig{StrictBalancing: strict},
	)
}

func (f *fixture) transfers() *usecase.TransferUseCase {
	return usecase.NewTransferUseCase(
		f.TxManager, f.Accounts, f.Transactions, f.Entries, f.users,
		f.InterestConfigs, f.InterestPeriods, f.Outbox, f.IDGen, nil,
	)
}

func (f *fixture) assertBalance(t *testing.T, id string, want int64) {
	t.Helper()
	if got := f.Accounts.Balance(id); !got.Equal(decimal.NewFromInt(want)) {
		t.Errorf("account %s: expected balance %d, got %s", id, want, got)
	}
}

func date(s string) *time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return &d
}

func debit(accountID string, amount int64) usecase.EntryInput {
	return usecase.EntryInput{AccountID: accountID, Amount: decimal.NewFromInt(amount), EntryType: domain.EntryTypeDebit}
}

func credit(accountID string, amount int64) usecase.EntryInput {
	return usecase.EntryInput{AccountID: accountID, Amount: decimal.NewFromInt(amount), EntryType: domain.EntryTypeCredit}
}
