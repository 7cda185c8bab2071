package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// balanceStore implements domain.BalanceStore over explicit database
// transactions. Row locks taken by LockAccount are held until Commit or
// Rollback ends the scope.
type balanceStore struct {
	db *DB
}

// NewBalanceStore creates a new balance store
func NewBalanceStore(db *DB) domain.BalanceStore {
	return &balanceStore{db: db}
}

// Begin opens a new transactional scope
func (s *balanceStore) Begin(ctx context.Context) (domain.BalanceTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &balanceTx{tx: tx}, nil
}

// balanceTx implements domain.BalanceTx
type balanceTx struct {
	tx *sql.Tx
}

// LockAccount takes an exclusive row lock and re-reads the account under it
func (t *balanceTx) LockAccount(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, username, balance FROM accounts WHERE id = $1 FOR UPDATE`

	var account domain.Account
	err := t.tx.QueryRowContext(ctx, query, id).Scan(&account.ID, &account.Username, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account row: %w", err)
	}

	return &account, nil
}

// SetBalance stages a new balance for a locked account
func (t *balanceTx) SetBalance(ctx context.Context, id uuid.UUID, balance int64) error {
	query := `UPDATE accounts SET balance = $1 WHERE id = $2`

	if _, err := t.tx.ExecContext(ctx, query, balance, id); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	return nil
}

// Commit atomically applies staged changes and releases the locks
func (t *balanceTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Rollback discards staged changes and releases the locks.
// After a successful Commit this is a no-op.
func (t *balanceTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to roll back transaction: %w", err)
	}
	return nil
}
