package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `SELECT id, username, balance FROM accounts WHERE id = $1`

	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, id).Scan(&account.ID, &account.Username, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &account, nil
}

// GetByUsername resolves a username to an account
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	query := `SELECT id, username, balance FROM accounts WHERE username = $1`

	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, username).Scan(&account.ID, &account.Username, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}

	return &account, nil
}
