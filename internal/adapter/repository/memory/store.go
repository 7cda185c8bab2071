// Package memory provides an in-process implementation of the domain
// store interfaces. Each account row carries its own mutex, mirroring
// the row-level exclusive locks of the SQL store, so code exercised
// against it sees the same blocking and serialization behavior.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// Store holds accounts, transaction records and API keys in memory.
// It implements domain.AccountRepository, domain.TransactionRepository,
// domain.BalanceStore and domain.IdentityResolver.
type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*accountRow
	records  []*domain.TransactionRecord
	apiKeys  map[string]uuid.UUID
}

// accountRow is one mutable account slot. mu is the row lock; it is held
// by at most one transactional scope at a time.
type accountRow struct {
	mu      sync.Mutex
	account domain.Account
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]*accountRow),
		apiKeys:  make(map[string]uuid.UUID),
	}
}

// CreateAccount registers a new account and returns a snapshot of it.
func (s *Store) CreateAccount(username string, balance int64) *domain.Account {
	s.mu.Lock()
	defer s.mu.Unlock()

	account := domain.Account{ID: uuid.New(), Username: username, Balance: balance}
	s.accounts[account.ID] = &accountRow{account: account}

	cp := account
	return &cp
}

// DeleteAccount removes an account. Scopes already waiting on the row
// observe the deletion when they acquire the lock.
func (s *Store) DeleteAccount(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
}

// SetAPIKey associates a bearer key with an account.
func (s *Store) SetAPIKey(key string, accountID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apiKeys[key] = accountID
}

// GetByID implements domain.AccountRepository
func (s *Store) GetByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	cp := row.account
	return &cp, nil
}

// GetByUsername implements domain.AccountRepository
func (s *Store) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.accounts {
		if row.account.Username == username {
			cp := row.account
			return &cp, nil
		}
	}

	return nil, domain.ErrAccountNotFound
}

// Create implements domain.TransactionRepository
func (s *Store) Create(_ context.Context, record *domain.TransactionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records = append(s.records, &cp)
	return nil
}

// ListByAccount implements domain.TransactionRepository
func (s *Store) ListByAccount(_ context.Context, accountID uuid.UUID, filter domain.ListFilter) ([]*domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]*domain.TransactionRecord, 0)
	for _, record := range s.records {
		if record.SenderID != accountID && record.RecipientID != accountID {
			continue
		}
		if filter.DateFrom != nil && record.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && record.Date.After(*filter.DateTo) {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		cp := *record
		matched = append(matched, &cp)
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Date.Equal(matched[j].Date) {
			return matched[i].ID.String() < matched[j].ID.String()
		}
		return matched[i].Date.Before(matched[j].Date)
	})

	if filter.Offset >= len(matched) {
		return []*domain.TransactionRecord{}, nil
	}
	matched = matched[filter.Offset:]

	if filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

// ResolveAPIKey implements domain.IdentityResolver
func (s *Store) ResolveAPIKey(ctx context.Context, key string) (*domain.Account, error) {
	s.mu.Lock()
	accountID, ok := s.apiKeys[key]
	s.mu.Unlock()

	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	return s.GetByID(ctx, accountID)
}

// Begin implements domain.BalanceStore
func (s *Store) Begin(_ context.Context) (domain.BalanceTx, error) {
	return &storeTx{store: s, staged: make(map[uuid.UUID]int64)}, nil
}

// storeTx is one transactional scope over the store. It accumulates row
// locks and staged balances; Commit applies them together, Rollback
// discards them. Both release every held lock.
type storeTx struct {
	store  *Store
	locked []*accountRow
	staged map[uuid.UUID]int64
	done   bool
}

// LockAccount blocks until the row lock is acquired, then returns a
// fresh read of the account.
func (t *storeTx) LockAccount(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	if t.done {
		return nil, errTxFinished
	}

	t.store.mu.Lock()
	row, ok := t.store.accounts[id]
	t.store.mu.Unlock()
	if !ok {
		return nil, domain.ErrAccountNotFound
	}

	row.mu.Lock()

	// The row may have been deleted while this scope waited on the lock.
	t.store.mu.Lock()
	_, stillThere := t.store.accounts[id]
	t.store.mu.Unlock()
	if !stillThere {
		row.mu.Unlock()
		return nil, domain.ErrAccountNotFound
	}

	t.locked = append(t.locked, row)

	cp := row.account
	return &cp, nil
}

// SetBalance stages a new balance for a locked account
func (t *storeTx) SetBalance(_ context.Context, id uuid.UUID, balance int64) error {
	if t.done {
		return errTxFinished
	}

	for _, row := range t.locked {
		if row.account.ID == id {
			t.staged[id] = balance
			return nil
		}
	}

	return errors.New("account is not locked by this transaction")
}

// Commit applies all staged balances and releases the locks
func (t *storeTx) Commit() error {
	if t.done {
		return errTxFinished
	}

	// The row lock serializes writers, but snapshot readers only hold
	// the store lock, so the balance write must hold both.
	t.store.mu.Lock()
	for _, row := range t.locked {
		if balance, ok := t.staged[row.account.ID]; ok {
			row.account.Balance = balance
		}
	}
	t.store.mu.Unlock()

	t.finish()
	return nil
}

// Rollback discards staged balances and releases the locks.
// After Commit it is a no-op.
func (t *storeTx) Rollback() error {
	if t.done {
		return nil
	}

	t.finish()
	return nil
}

func (t *storeTx) finish() {
	for _, row := range t.locked {
		row.mu.Unlock()
	}
	t.locked = nil
	t.staged = nil
	t.done = true
}

var errTxFinished = errors.New("transaction already finished")
