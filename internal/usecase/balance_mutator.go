package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/iho/fundledger/internal/domain"
)

// BalanceMutator applies and reverses the balance effect of entries.
// It never creates or deletes entry records and must run inside the
// caller's transaction, which rolls back on any error.
type BalanceMutator struct {
	accountRepo AccountRepository
	now         func() time.Time
}

// NewBalanceMutator creates a new BalanceMutator.
func NewBalanceMutator(accountRepo AccountRepository) *BalanceMutator {
	return &BalanceMutator{
		accountRepo: accountRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Lock locks the given accounts in sorted id order and returns them by id.
// It fails with ErrAccountNotFound if any id does not exist.
func (m *BalanceMutator) Lock(ctx context.Context, tx Transaction, ids []string) (map[string]*domain.Account, error) {
	sorted := uniqueSorted(ids)

	accounts, err := m.accountRepo.GetByIDsForUpdate(ctx, tx, sorted)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(sorted) {
		return nil, domain.ErrAccountNotFound
	}

	byID := make(map[string]*domain.Account, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	return byID, nil
}

// Apply posts every entry to its account: Debit adds, Credit subtracts.
func (m *BalanceMutator) Apply(ctx context.Context, tx Transaction, entries []*domain.TransactionEntry) error {
	return m.mutate(ctx, tx, entries, false)
}

// Reverse undoes Apply for the same entries: Debit subtracts, Credit adds.
func (m *BalanceMutator) Reverse(ctx context.Context, tx Transaction, entries []*domain.TransactionEntry) error {
	return m.mutate(ctx, tx, entries, true)
}

func (m *BalanceMutator) mutate(ctx context.Context, tx Transaction, entries []*domain.TransactionEntry, reverse bool) error {
	if len(entries) == 0 {
		return nil
	}

	accounts, err := m.Lock(ctx, tx, domain.EntryAccountIDs(entries))
	if err != nil {
		return err
	}

	now := m.now()

	// Entries are written one at a time against the locked copy, so two
	// entries on the same account compound instead of overwriting each other.
	for _, e := range entries {
		account := accounts[e.AccountID]

		balance := account.Post(e.EntryType, e.Amount)
		if reverse {
			balance = account.Unpost(e.EntryType, e.Amount)
		}

		if err := m.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, now); err != nil {
			return err
		}

		account.CurrentBalance = balance
		account.UpdatedAt = now
	}

	return nil
}

func uniqueSorted(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
