package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account read operations
// outside a locked scope. Reads that decide a balance mutation never go
// through here; they use BalanceTx.LockAccount instead.
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// GetByUsername resolves a username to an account.
	// Returns ErrAccountNotFound if no such account exists.
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

// TransactionRepository defines the interface for transaction record
// persistence. Records are write-once; there is no update or delete.
type TransactionRepository interface {
	// Create durably appends a transaction record
	Create(ctx context.Context, record *TransactionRecord) error

	// ListByAccount retrieves records where the account is sender or
	// recipient, narrowed by the filter, ordered by date then ID ascending.
	// The filter must already be normalized.
	ListByAccount(ctx context.Context, accountID uuid.UUID, filter ListFilter) ([]*TransactionRecord, error)
}

// BalanceStore opens explicit transactional scopes for balance mutations.
// Every scope must end in exactly one Commit or Rollback, releasing all
// row locks it acquired.
type BalanceStore interface {
	Begin(ctx context.Context) (BalanceTx, error)
}

// BalanceTx is a single transactional scope over account balances.
type BalanceTx interface {
	// LockAccount takes an exclusive row lock on the account and returns a
	// fresh read of it. Blocks until the store grants the lock. Returns
	// ErrAccountNotFound if the row no longer exists.
	LockAccount(ctx context.Context, id uuid.UUID) (*Account, error)

	// SetBalance stages a new balance for a locked account. The change
	// becomes visible only on Commit.
	SetBalance(ctx context.Context, id uuid.UUID, balance int64) error

	// Commit atomically applies all staged changes and releases the locks.
	Commit() error

	// Rollback discards staged changes and releases the locks.
	// Calling Rollback after Commit is a no-op.
	Rollback() error
}

// IdentityResolver resolves a bearer credential to the calling account.
// Credential parsing and storage live outside this core; the resolver is
// supplied by the composition root.
type IdentityResolver interface {
	ResolveAPIKey(ctx context.Context, key string) (*Account, error)
}
