package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionStatus represents the terminal outcome of a transfer attempt
type TransactionStatus string

const (
	TransactionSucceeded TransactionStatus = "SUCCEEDED"
	TransactionFailed    TransactionStatus = "FAILED"
)

// TransactionRecord is the immutable audit entry describing one transfer
// attempt. Exactly one record exists per attempt, success or failure.
// The amount on a failed record still reflects the requested value.
//
// Sender and recipient references are historical: the referenced accounts
// may later change balance or be deleted without invalidating the record.
type TransactionRecord struct {
	ID          uuid.UUID
	Amount      int64
	Date        time.Time
	Status      TransactionStatus
	SenderID    uuid.UUID
	RecipientID uuid.UUID
}

// Validate ensures the record adheres to domain rules.
// Returns an error if validation fails.
func (r *TransactionRecord) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}

	if r.Status != TransactionSucceeded && r.Status != TransactionFailed {
		return ErrInvalidStatus
	}

	if r.SenderID == r.RecipientID {
		return ErrSelfTransfer
	}

	return nil
}

// Pagination bounds for transaction listings.
const (
	MaxListLimit     = 100
	DefaultListLimit = 100
)

// ListFilter narrows a transaction listing. Date bounds are inclusive.
// A zero Limit means "use the default".
type ListFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Status   *TransactionStatus
	Limit    int
	Offset   int
}

// Normalize validates the filter and fills in pagination defaults.
// Returns the normalized filter or an error naming the rejected field.
func (f ListFilter) Normalize() (ListFilter, error) {
	if f.Limit == 0 {
		f.Limit = DefaultListLimit
	}

	if f.Limit < 1 || f.Limit > MaxListLimit {
		return ListFilter{}, ErrInvalidLimit
	}

	if f.Offset < 0 {
		return ListFilter{}, ErrInvalidOffset
	}

	if f.DateFrom != nil && f.DateTo != nil && f.DateFrom.After(*f.DateTo) {
		return ListFilter{}, ErrInvalidDateRange
	}

	return f, nil
}
