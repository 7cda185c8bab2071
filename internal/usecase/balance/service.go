package balance

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/fundflow-backend/internal/domain"
	"github.com/simaogato/fundflow-backend/internal/logging"
)

// Service performs direct balance adjustments (deposits and withdrawals)
// on a single account.
//
// Adjustments are administrative mutations outside the ledger audit
// trail: unlike transfers they produce no transaction record.
type Service struct {
	Store domain.BalanceStore
}

// NewService creates a new balance Service instance
func NewService(store domain.BalanceStore) *Service {
	return &Service{Store: store}
}

// Adjust adds delta to the account balance and returns the new balance.
// delta may be negative as long as the balance stays non-negative;
// otherwise domain.ErrInsufficientFunds is returned and nothing changes.
func (s *Service) Adjust(ctx context.Context, accountID uuid.UUID, delta int64) (int64, error) {
	log := logging.FromContext(ctx)

	log.Info("starting balance adjustment",
		zap.String("account_id", accountID.String()),
		zap.Int64("delta", delta),
	)

	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin adjustment transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	account, err := tx.LockAccount(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}

	newBalance := account.Balance + delta
	if newBalance < 0 {
		log.Info("rejected: insufficient funds",
			zap.Int64("balance", account.Balance),
		)
		return 0, domain.ErrInsufficientFunds
	}

	if err := tx.SetBalance(ctx, accountID, newBalance); err != nil {
		return 0, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit adjustment: %w", err)
	}

	log.Info("balance adjusted", zap.Int64("new_balance", newBalance))

	return newBalance, nil
}
