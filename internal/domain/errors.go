package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the account does not exist in the store.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnknownRecipient indicates that the recipient username could not be
	// resolved to an account. Rejected before the attempt stage, so no
	// transaction record is written.
	ErrUnknownRecipient = errors.New("invalid recipient username")

	// ErrSelfTransfer indicates that sender and recipient are the same account.
	ErrSelfTransfer = errors.New("cannot transfer to yourself")

	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInvalidStatus indicates a transaction status outside the known set.
	ErrInvalidStatus = errors.New("status must be SUCCEEDED or FAILED")

	// ErrInsufficientFunds indicates that the mutation would drive a balance
	// below zero. For transfers this is recorded as a failed attempt.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrRecipientGone indicates that the recipient account vanished between
	// validation and the locked re-read. Recorded as a failed attempt.
	ErrRecipientGone = errors.New("recipient no longer exists")

	// ErrInvalidDateRange indicates that date_from is later than date_to.
	ErrInvalidDateRange = errors.New("incorrect dates: date_from is later than date_to")

	// ErrInvalidLimit indicates a listing limit outside 1..100.
	ErrInvalidLimit = errors.New("limit must be between 1 and 100")

	// ErrInvalidOffset indicates a negative listing offset.
	ErrInvalidOffset = errors.New("offset must not be negative")
)
