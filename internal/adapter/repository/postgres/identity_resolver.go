package postgres

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// identityResolver implements domain.IdentityResolver by looking up the
// SHA-256 hash of the presented API key. Keys are never stored or
// compared in plain text.
type identityResolver struct {
	db *DB
}

// NewIdentityResolver creates a new identity resolver
func NewIdentityResolver(db *DB) domain.IdentityResolver {
	return &identityResolver{db: db}
}

// ResolveAPIKey resolves a bearer API key to its account
func (r *identityResolver) ResolveAPIKey(ctx context.Context, key string) (*domain.Account, error) {
	hash := sha256.Sum256([]byte(key))
	hashedKey := hex.EncodeToString(hash[:])

	query := `
		SELECT a.id, a.username, a.balance
		FROM accounts a
		JOIN api_keys k ON k.account_id = a.id
		WHERE k.key_hash = $1
	`

	var account domain.Account
	err := r.db.QueryRowContext(ctx, query, hashedKey).Scan(&account.ID, &account.Username, &account.Balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve api key: %w", err)
	}

	return &account, nil
}
