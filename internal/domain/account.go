package domain

import (
	"github.com/google/uuid"
)

// Account represents a ledger participant in the domain layer.
// Balances are stored as int64 minor units (e.g. cents) to avoid
// floating point errors.
//
// Invariant: Balance >= 0 at all observable times between transactions.
// Accounts are created externally at registration; this core only
// mutates their balance, never their identity or lifecycle.
type Account struct {
	ID       uuid.UUID
	Username string
	Balance  int64
}
