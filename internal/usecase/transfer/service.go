package transfer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/fundflow-backend/internal/domain"
	"github.com/simaogato/fundflow-backend/internal/logging"
)

// Input represents the input for a transfer. SenderID is the already
// authenticated caller; the recipient arrives as a username and is
// resolved here.
type Input struct {
	SenderID          uuid.UUID
	RecipientUsername string
	Amount            int64
}

// Output represents the result of a transfer attempt. Record is present
// whenever the attempt stage was entered, success or failure.
// SenderBalance is the sender's balance after a succeeded transfer.
type Output struct {
	Record        *domain.TransactionRecord
	SenderBalance int64
}

// Service orchestrates balance transfers between two accounts.
//
// A call runs in two stages. The validation stage rejects bad input
// without leaving any trace. The attempt stage, once entered, always
// terminates with exactly one transaction record tagged SUCCEEDED or
// FAILED, and the balance mutation commits atomically or not at all.
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	Store           domain.BalanceStore
}

// NewService creates a new transfer Service instance
func NewService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	store domain.BalanceStore,
) *Service {
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		Store:           store,
	}
}

// Transfer moves input.Amount from the sender to the recipient.
//
// Validation failures (non-positive amount, unknown recipient,
// self-transfer) return a domain error with a nil Output: the attempt
// never started and no record exists. Every other outcome carries the
// record of the attempt, with the error classifying it: nil for success,
// domain.ErrInsufficientFunds / domain.ErrRecipientGone for domain
// rejections, and a wrapped store error for infrastructure failures.
func (s *Service) Transfer(ctx context.Context, input Input) (*Output, error) {
	// Every log line of one attempt shares a correlation id.
	log := logging.FromContext(ctx).With(zap.String("transfer_id", uuid.NewString()))
	ctx = logging.WithLogger(ctx, log)

	log.Info("starting transfer",
		zap.String("sender_id", input.SenderID.String()),
		zap.String("recipient", input.RecipientUsername),
		zap.Int64("amount", input.Amount),
	)

	if input.Amount <= 0 {
		log.Info("rejected: non-positive amount")
		return nil, domain.ErrInvalidAmount
	}

	recipient, err := s.AccountRepo.GetByUsername(ctx, input.RecipientUsername)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			log.Info("rejected: recipient does not exist")
			return nil, domain.ErrUnknownRecipient
		}
		return nil, fmt.Errorf("failed to resolve recipient: %w", err)
	}

	if recipient.ID == input.SenderID {
		log.Info("rejected: sender and recipient are the same account")
		return nil, domain.ErrSelfTransfer
	}

	// Attempt stage. From here on exactly one record is written.
	senderBalance, attemptErr := s.attempt(ctx, input.SenderID, recipient.ID, input.Amount)

	record := &domain.TransactionRecord{
		ID:          uuid.New(),
		Amount:      input.Amount,
		Date:        time.Now(),
		Status:      domain.TransactionSucceeded,
		SenderID:    input.SenderID,
		RecipientID: recipient.ID,
	}
	if attemptErr != nil {
		record.Status = domain.TransactionFailed
	}

	if err := s.TransactionRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record transfer attempt: %w", err)
	}

	if attemptErr != nil {
		log.Info("transfer failed",
			zap.String("transaction_id", record.ID.String()),
			zap.String("reason", attemptErr.Error()),
		)
		return &Output{Record: record}, attemptErr
	}

	log.Info("transfer success",
		zap.String("transaction_id", record.ID.String()),
		zap.Int64("new_balance", senderBalance),
	)

	return &Output{Record: record, SenderBalance: senderBalance}, nil
}

// attempt performs the locked balance mutation and returns the sender's
// new balance. Both accounts stay locked until the single commit, so
// either both balances change or neither does.
func (s *Service) attempt(ctx context.Context, senderID, recipientID uuid.UUID, amount int64) (int64, error) {
	tx, err := s.Store.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transfer transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Locks are taken in ascending account-ID order regardless of
	// transfer direction, so reciprocal concurrent transfers cannot
	// deadlock against each other.
	accounts := make(map[uuid.UUID]*domain.Account, 2)
	for _, id := range lockOrder(senderID, recipientID) {
		account, err := tx.LockAccount(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) && id == recipientID {
				return 0, domain.ErrRecipientGone
			}
			return 0, fmt.Errorf("failed to lock account %s: %w", id, err)
		}
		accounts[id] = account
	}

	sender := accounts[senderID]
	recipient := accounts[recipientID]

	if sender.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}

	if err := tx.SetBalance(ctx, senderID, sender.Balance-amount); err != nil {
		return 0, fmt.Errorf("failed to debit sender: %w", err)
	}

	if err := tx.SetBalance(ctx, recipientID, recipient.Balance+amount); err != nil {
		return 0, fmt.Errorf("failed to credit recipient: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transfer: %w", err)
	}

	return sender.Balance - amount, nil
}

// lockOrder returns the two account IDs in ascending byte order.
func lockOrder(a, b uuid.UUID) [2]uuid.UUID {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return [2]uuid.UUID{a, b}
	}
	return [2]uuid.UUID{b, a}
}
