package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fundledger/internal/domain"
	"github.com/iho/fundledger/internal/usecase"
)

// Snapshotter is implemented by the in-memory repositories. Snapshot copies
// the current state and returns a function that restores it.
type Snapshotter interface {
	Snapshot() func()
}

// MockAccountRepository is an in-memory implementation of AccountRepository.
// Reads return copies, so callers never alias stored state.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	UpdateFunc            func(ctx context.Context, account *domain.Account) error
	DeleteFunc            func(ctx context.Context, id string) error
	ListFunc              func(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, int64, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Seed stores accounts directly, bypassing Create.
func (m *MockAccountRepository) Seed(accounts ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range accounts {
		m.accounts[a.ID] = copyAccount(a)
	}
}

// Balance returns the stored balance of an account, or zero when absent.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a.CurrentBalance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.Account, len(m.accounts))
	for id, a := range m.accounts {
		saved[id] = copyAccount(a)
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.accounts = saved
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.Name == account.Name {
			return domain.ErrDuplicateAccountName
		}
	}
	m.accounts[account.ID] = copyAccount(account)
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return copyAccount(acc), nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			accounts = append(accounts, copyAccount(acc))
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.CurrentBalance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.accounts[account.ID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	for _, a := range m.accounts {
		if a.ID != account.ID && a.Name == account.Name {
			return domain.ErrDuplicateAccountName
		}
	}
	updated := copyAccount(account)
	updated.CurrentBalance = stored.CurrentBalance
	m.accounts[account.ID] = updated
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return domain.ErrAccountNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, filter usecase.AccountFilter) ([]*domain.Account, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		if filter.Type != "" && acc.Type != filter.Type {
			continue
		}
		if filter.IsActive != nil && acc.IsActive != *filter.IsActive {
			continue
		}
		accounts = append(accounts, copyAccount(acc))
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
	return paginate(accounts, filter.Limit, filter.Offset), int64(len(accounts)), nil
}

// MockEntryRepository is an in-memory implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.TransactionEntry

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionEntry) error
	DeleteByTransactionFunc func(ctx context.Context, tx usecase.Transaction, transactionID string) error
	GetByAccountFunc        func(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionEntry, int64, error)
	SumByAccountFunc        func(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.TransactionEntry),
	}
}

func (m *MockEntryRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.TransactionEntry, len(m.entries))
	for id, e := range m.entries {
		saved[id] = copyEntry(e)
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.entries = saved
	}
}

// Count returns the number of stored entries.
func (m *MockEntryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// ByTransaction returns the stored entries of a transaction in creation order.
func (m *MockEntryRepository) ByTransaction(transactionID string) []*domain.TransactionEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.TransactionEntry
	for _, e := range m.entries {
		if e.TransactionID == transactionID {
			entries = append(entries, copyEntry(e))
		}
	}
	sortEntries(entries)
	return entries
}

func (m *MockEntryRepository) all() []*domain.TransactionEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entries := make([]*domain.TransactionEntry, 0, len(m.entries))
	for _, e := range m.entries {
		entries = append(entries, copyEntry(e))
	}
	return entries
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.TransactionEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = copyEntry(entry)
	return nil
}

func (m *MockEntryRepository) DeleteByTransaction(ctx context.Context, tx usecase.Transaction, transactionID string) error {
	if m.DeleteByTransactionFunc != nil {
		return m.DeleteByTransactionFunc(ctx, tx, transactionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		if e.TransactionID == transactionID {
			delete(m.entries, id)
		}
	}
	return nil
}

func (m *MockEntryRepository) GetByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransactionEntry, int64, error) {
	if m.GetByAccountFunc != nil {
		return m.GetByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.TransactionEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, copyEntry(e))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CreatedAt.After(entries[j].CreatedAt) })
	return paginate(entries, limit, offset), int64(len(entries)), nil
}

func (m *MockEntryRepository) SumByAccount(ctx context.Context, accountID string) (decimal.Decimal, decimal.Decimal, error) {
	if m.SumByAccountFunc != nil {
		return m.SumByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.TransactionEntry
	for _, e := range m.entries {
		if e.AccountID == accountID {
			entries = append(entries, e)
		}
	}
	debits, credits := domain.SideTotals(entries)
	return debits, credits, nil
}

// MockTransactionRepository is an in-memory implementation of
// TransactionRepository. Reads attach entries from the entry repository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	entries      *MockEntryRepository

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	DeleteFunc           func(ctx context.Context, tx usecase.Transaction, id string) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error)
	ListFunc             func(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error)
}

func NewMockTransactionRepository(entries *MockEntryRepository) *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
		entries:      entries,
	}
}

func (m *MockTransactionRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.Transaction, len(m.transactions))
	for id, t := range m.transactions {
		saved[id] = copyHeader(t)
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.transactions = saved
	}
}

// Count returns the number of stored transaction headers.
func (m *MockTransactionRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transactions)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[txn.ID] = copyHeader(txn)
	return nil
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.transactions[txn.ID] = copyHeader(txn)
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.transactions, id)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return m.get(id)
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.get(id)
}

func (m *MockTransactionRepository) get(id string) (*domain.Transaction, error) {
	m.mu.RLock()
	t, ok := m.transactions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	txn := copyHeader(t)
	txn.Entries = m.entries.ByTransaction(id)
	return txn, nil
}

func (m *MockTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.Transaction, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	ids := make([]string, 0, len(m.transactions))
	for id := range m.transactions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var out []*domain.Transaction
	for _, id := range ids {
		txn, err := m.get(id)
		if err != nil {
			continue
		}
		if matchesFilter(txn, filter) {
			out = append(out, txn)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.After(out[j].TransactionDate) })
	return paginate(out, filter.Limit, filter.Offset), int64(len(out)), nil
}

func matchesFilter(txn *domain.Transaction, f usecase.TransactionFilter) bool {
	if f.Type != "" && txn.TransactionType != f.Type {
		return false
	}
	if f.UserID != "" && txn.CreatedBy != f.UserID {
		return false
	}
	from, until := f.DateRange()
	if from != nil && txn.TransactionDate.Before(*from) {
		return false
	}
	if until != nil && !txn.TransactionDate.Before(*until) {
		return false
	}
	if f.AccountID != "" {
		for _, e := range txn.Entries {
			if e.AccountID == f.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

// MockInterestConfigRepository is an in-memory implementation of InterestConfigRepository.
type MockInterestConfigRepository struct {
	mu      sync.RWMutex
	configs map[string]*domain.InterestConfiguration

	// Reads counts store reads, so tests can observe cache hits.
	Reads int

	CreateFunc          func(ctx context.Context, config *domain.InterestConfiguration) error
	GetByIDFunc         func(ctx context.Context, id string) (*domain.InterestConfiguration, error)
	GetActiveByIDTxFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.InterestConfiguration, error)
	UpdateFunc          func(ctx context.Context, config *domain.InterestConfiguration) error
	DeleteFunc          func(ctx context.Context, id string) error
}

func NewMockInterestConfigRepository() *MockInterestConfigRepository {
	return &MockInterestConfigRepository{
		configs: make(map[string]*domain.InterestConfiguration),
	}
}

func (m *MockInterestConfigRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.InterestConfiguration, len(m.configs))
	for id, c := range m.configs {
		cp := *c
		saved[id] = &cp
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.configs = saved
	}
}

func (m *MockInterestConfigRepository) Create(ctx context.Context, config *domain.InterestConfiguration) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, config)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.configs {
		if c.Name == config.Name {
			return domain.ErrDuplicateInterestConfigName
		}
	}
	cp := *config
	m.configs[config.ID] = &cp
	return nil
}

func (m *MockInterestConfigRepository) GetByID(ctx context.Context, id string) (*domain.InterestConfiguration, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reads++
	if c, ok := m.configs[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrInterestConfigNotFound
}

func (m *MockInterestConfigRepository) GetActiveByIDTx(ctx context.Context, tx usecase.Transaction, id string) (*domain.InterestConfiguration, error) {
	if m.GetActiveByIDTxFunc != nil {
		return m.GetActiveByIDTxFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.configs[id]; ok && c.IsActive {
		cp := *c
		return &cp, nil
	}
	return nil, domain.ErrInterestConfigInactive
}

func (m *MockInterestConfigRepository) Update(ctx context.Context, config *domain.InterestConfiguration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, config)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[config.ID]; !ok {
		return domain.ErrInterestConfigNotFound
	}
	cp := *config
	m.configs[config.ID] = &cp
	return nil
}

func (m *MockInterestConfigRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[id]; !ok {
		return domain.ErrInterestConfigNotFound
	}
	delete(m.configs, id)
	return nil
}

func (m *MockInterestConfigRepository) List(ctx context.Context, isActive *bool, limit, offset int) ([]*domain.InterestConfiguration, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var configs []*domain.InterestConfiguration
	for _, c := range m.configs {
		if isActive != nil && c.IsActive != *isActive {
			continue
		}
		cp := *c
		configs = append(configs, &cp)
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].Name < configs[j].Name })
	return paginate(configs, limit, offset), int64(len(configs)), nil
}

// MockInterestPeriodRepository is an in-memory implementation of InterestPeriodRepository.
type MockInterestPeriodRepository struct {
	mu      sync.RWMutex
	periods map[string]*domain.AccountInterestPeriod

	CreateFunc func(ctx context.Context, tx usecase.Transaction, period *domain.AccountInterestPeriod) error
}

func NewMockInterestPeriodRepository() *MockInterestPeriodRepository {
	return &MockInterestPeriodRepository{
		periods: make(map[string]*domain.AccountInterestPeriod),
	}
}

func (m *MockInterestPeriodRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.AccountInterestPeriod, len(m.periods))
	for id, p := range m.periods {
		cp := *p
		saved[id] = &cp
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.periods = saved
	}
}

// Count returns the number of stored periods.
func (m *MockInterestPeriodRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.periods)
}

func (m *MockInterestPeriodRepository) Create(ctx context.Context, tx usecase.Transaction, period *domain.AccountInterestPeriod) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, period)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *period
	m.periods[period.ID] = &cp
	return nil
}

func (m *MockInterestPeriodRepository) GetByTransaction(ctx context.Context, transactionID string) (*domain.AccountInterestPeriod, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.periods {
		if p.InitialTransferTransactionID == transactionID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// MockPurchaseOrderRepository is an in-memory implementation of PurchaseOrderRepository.
type MockPurchaseOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.PurchaseOrder
}

func NewMockPurchaseOrderRepository() *MockPurchaseOrderRepository {
	return &MockPurchaseOrderRepository{
		orders: make(map[string]*domain.PurchaseOrder),
	}
}

// Seed stores purchase orders directly.
func (m *MockPurchaseOrderRepository) Seed(orders ...*domain.PurchaseOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, po := range orders {
		cp := *po
		m.orders[po.ID] = &cp
	}
}

func (m *MockPurchaseOrderRepository) Snapshot() func() {
	m.mu.RLock()
	saved := make(map[string]*domain.PurchaseOrder, len(m.orders))
	for id, po := range m.orders {
		cp := *po
		saved[id] = &cp
	}
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.orders = saved
	}
}

func (m *MockPurchaseOrderRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.PurchaseOrder, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if po, ok := m.orders[id]; ok {
		cp := *po
		return &cp, nil
	}
	return nil, domain.ErrPurchaseOrderNotFound
}

func (m *MockPurchaseOrderRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, po *domain.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.orders[po.ID]; !ok {
		return domain.ErrPurchaseOrderNotFound
	}
	cp := *po
	m.orders[po.ID] = &cp
	return nil
}

// MockLedgerRepository computes ledger totals from the in-memory account and
// entry repositories.
type MockLedgerRepository struct {
	accounts *MockAccountRepository
	entries  *MockEntryRepository
}

func NewMockLedgerRepository(accounts *MockAccountRepository, entries *MockEntryRepository) *MockLedgerRepository {
	return &MockLedgerRepository{accounts: accounts, entries: entries}
}

func (m *MockLedgerRepository) Totals(ctx context.Context) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	balances := decimal.Zero
	m.accounts.mu.RLock()
	for _, a := range m.accounts.accounts {
		balances = balances.Add(a.CurrentBalance)
	}
	m.accounts.mu.RUnlock()

	debits, credits := domain.SideTotals(m.entries.all())
	return balances, debits, credits, nil
}

// MockOutboxRepository is an in-memory implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Snapshot() func() {
	m.mu.RLock()
	saved := append([]*domain.OutboxEvent(nil), m.events...)
	m.mu.RUnlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.events = saved
	}
}

// EventTypes returns the types of stored events in creation order.
func (m *MockOutboxRepository) EventTypes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	types := make([]string, 0, len(m.events))
	for _, e := range m.events {
		types = append(types, e.EventType)
	}
	return types
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			out = append(out, e)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

// MockTransactionManager hands out MockTransactions. Repositories passed to
// Track are snapshotted on Begin and restored when a transaction is rolled
// back without having been committed.
type MockTransactionManager struct {
	mu      sync.Mutex
	tracked []Snapshotter

	Commits   int
	Rollbacks int

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager(tracked ...Snapshotter) *MockTransactionManager {
	return &MockTransactionManager{tracked: tracked}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	restores := make([]func(), 0, len(m.tracked))
	for _, s := range m.tracked {
		restores = append(restores, s.Snapshot())
	}

	return &MockTransaction{manager: m, restores: restores}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	manager   *MockTransactionManager
	restores  []func()
	committed bool
	done      bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	if m.done {
		return nil
	}
	m.committed = true
	m.done = true
	if m.manager != nil {
		m.manager.mu.Lock()
		m.manager.Commits++
		m.manager.mu.Unlock()
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if m.done {
		return nil
	}
	m.done = true
	for _, restore := range m.restores {
		restore()
	}
	if m.manager != nil {
		m.manager.mu.Lock()
		m.manager.Rollbacks++
		m.manager.mu.Unlock()
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// Ledger bundles in-memory repositories sharing one snapshotting
// transaction manager.
type Ledger struct {
	Accounts        *MockAccountRepository
	Entries         *MockEntryRepository
	Transactions    *MockTransactionRepository
	InterestConfigs *MockInterestConfigRepository
	InterestPeriods *MockInterestPeriodRepository
	PurchaseOrders  *MockPurchaseOrderRepository
	LedgerTotals    *MockLedgerRepository
	Outbox          *MockOutboxRepository
	TxManager       *MockTransactionManager
	IDGen           *MockIDGenerator
}

// NewLedger creates an empty in-memory ledger.
func NewLedger() *Ledger {
	l := &Ledger{
		Accounts:        NewMockAccountRepository(),
		Entries:         NewMockEntryRepository(),
		InterestConfigs: NewMockInterestConfigRepository(),
		InterestPeriods: NewMockInterestPeriodRepository(),
		PurchaseOrders:  NewMockPurchaseOrderRepository(),
		Outbox:          NewMockOutboxRepository(),
		IDGen:           NewMockIDGenerator(),
	}
	l.Transactions = NewMockTransactionRepository(l.Entries)
	l.LedgerTotals = NewMockLedgerRepository(l.Accounts, l.Entries)
	l.TxManager = NewMockTransactionManager(
		l.Accounts, l.Entries, l.Transactions, l.InterestConfigs,
		l.InterestPeriods, l.PurchaseOrders, l.Outbox,
	)
	return l
}

func copyAccount(a *domain.Account) *domain.Account {
	cp := *a
	return &cp
}

func copyEntry(e *domain.TransactionEntry) *domain.TransactionEntry {
	cp := *e
	return &cp
}

func copyHeader(t *domain.Transaction) *domain.Transaction {
	cp := *t
	cp.Entries = nil
	return &cp
}

func sortEntries(entries []*domain.TransactionEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
