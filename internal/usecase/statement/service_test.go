package statement

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fundflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fundflow-backend/internal/domain"
)

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, record *domain.TransactionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, filter domain.ListFilter) ([]*domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransactionRecord), args.Error(1)
}

func TestListTransactions_NormalizesFilterBeforeQuerying(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := NewService(mockRepo)

	accountID := uuid.New()

	// The repository must receive the defaulted limit, not the zero value.
	mockRepo.On("ListByAccount", mock.Anything, accountID, domain.ListFilter{Limit: 100}).
		Return([]*domain.TransactionRecord{}, nil)

	records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{})

	require.NoError(t, err)
	assert.Empty(t, records)
	mockRepo.AssertExpectations(t)
}

func TestListTransactions_RejectsBadFiltersBeforeQuerying(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockTransactionRepository)
	service := NewService(mockRepo)

	later := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  domain.ListFilter
		wantErr error
	}{
		{"inverted date range", domain.ListFilter{DateFrom: &later, DateTo: &earlier}, domain.ErrInvalidDateRange},
		{"limit too large", domain.ListFilter{Limit: 500}, domain.ErrInvalidLimit},
		{"negative offset", domain.ListFilter{Offset: -3}, domain.ErrInvalidOffset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListTransactions(ctx, uuid.New(), tt.filter)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	mockRepo.AssertNotCalled(t, "ListByAccount", mock.Anything, mock.Anything, mock.Anything)
}

func TestListTransactions_FiltersAndOrdering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store)

	accountID := uuid.New()
	otherID := uuid.New()
	strangerID := uuid.New()

	day := func(d int) time.Time {
		return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC)
	}

	seed := []*domain.TransactionRecord{
		{ID: uuid.New(), Amount: 10, Date: day(1), Status: domain.TransactionSucceeded, SenderID: accountID, RecipientID: otherID},
		{ID: uuid.New(), Amount: 20, Date: day(3), Status: domain.TransactionFailed, SenderID: otherID, RecipientID: accountID},
		{ID: uuid.New(), Amount: 30, Date: day(5), Status: domain.TransactionSucceeded, SenderID: accountID, RecipientID: otherID},
		// Not involving the queried account at all.
		{ID: uuid.New(), Amount: 40, Date: day(2), Status: domain.TransactionSucceeded, SenderID: otherID, RecipientID: strangerID},
	}
	for _, record := range seed {
		require.NoError(t, store.Create(ctx, record))
	}

	t.Run("returns sender and recipient records in date order", func(t *testing.T) {
		records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.True(t, records[0].Date.Before(records[1].Date))
		assert.True(t, records[1].Date.Before(records[2].Date))
		for _, record := range records {
			involved := record.SenderID == accountID || record.RecipientID == accountID
			assert.True(t, involved)
		}
	})

	t.Run("inclusive date bounds", func(t *testing.T) {
		from := day(1)
		to := day(3)
		records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{DateFrom: &from, DateTo: &to})
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, record := range records {
			assert.False(t, record.Date.Before(from))
			assert.False(t, record.Date.After(to))
		}
	})

	t.Run("status filter", func(t *testing.T) {
		failed := domain.TransactionFailed
		records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{Status: &failed})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(20), records[0].Amount)
	})

	t.Run("limit and offset", func(t *testing.T) {
		records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, int64(20), records[0].Amount)
	})

	t.Run("offset past the end yields empty", func(t *testing.T) {
		records, err := service.ListTransactions(ctx, accountID, domain.ListFilter{Offset: 10})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}
