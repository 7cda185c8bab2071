package statement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// Service answers transaction history queries for an account.
type Service struct {
	TransactionRepo domain.TransactionRepository
}

// NewService creates a new statement Service instance
func NewService(transactionRepo domain.TransactionRepository) *Service {
	return &Service{TransactionRepo: transactionRepo}
}

// ListTransactions returns records where the account is sender or
// recipient, narrowed by the filter. The filter is validated and
// normalized before any query runs; malformed filters return a domain
// error. Results are ordered by date then ID ascending, so a fixed
// filter always yields the same sequence.
func (s *Service) ListTransactions(ctx context.Context, accountID uuid.UUID, filter domain.ListFilter) ([]*domain.TransactionRecord, error) {
	normalized, err := filter.Normalize()
	if err != nil {
		return nil, err
	}

	records, err := s.TransactionRepo.ListByAccount(ctx, accountID, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return records, nil
}
