package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create durably appends a transaction record
func (r *transactionRepository) Create(ctx context.Context, record *domain.TransactionRecord) error {
	query := `
		INSERT INTO transactions (id, amount, date, status, sender_id, recipient_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.Amount,
		record.Date,
		string(record.Status),
		record.SenderID,
		record.RecipientID,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction record: %w", err)
	}

	return nil
}

// ListByAccount retrieves records where the account is sender or recipient,
// narrowed by the filter, ordered by date then ID ascending
func (r *transactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, filter domain.ListFilter) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT id, amount, date, status, sender_id, recipient_id
		FROM transactions
		WHERE (sender_id = $1 OR recipient_id = $1)
	`
	args := []interface{}{accountID}

	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}

	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}

	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY date ASC, id ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TransactionRecord, 0)
	for rows.Next() {
		var record domain.TransactionRecord
		var status string
		if err := rows.Scan(
			&record.ID,
			&record.Amount,
			&record.Date,
			&status,
			&record.SenderID,
			&record.RecipientID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction record: %w", err)
		}
		record.Status = domain.TransactionStatus(status)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return records, nil
}
