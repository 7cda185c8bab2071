package transfer

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/fundflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/fundflow-backend/internal/domain"
)

// Reciprocal transfers lock each other's accounts. With direction-
// dependent lock order they would deadlock; with the fixed total order
// both must complete.
func TestTransfer_ReciprocalConcurrentTransfersComplete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, store, store)

	a := store.CreateAccount("alice", 100)
	b := store.CreateAccount("bob", 100)

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := service.Transfer(ctx, Input{SenderID: a.ID, RecipientUsername: "bob", Amount: 30})
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := service.Transfer(ctx, Input{SenderID: b.ID, RecipientUsername: "alice", Amount: 20})
		errs <- err
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	aAfter, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	bAfter, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(90), aAfter.Balance)
	assert.Equal(t, int64(110), bAfter.Balance)
	assert.Equal(t, int64(200), aAfter.Balance+bAfter.Balance)

	records, err := store.ListByAccount(ctx, a.ID, mustNormalize(t, domain.ListFilter{}))
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, record := range records {
		assert.Equal(t, domain.TransactionSucceeded, record.Status)
	}
}

// Many concurrent transfers in both directions must conserve the total
// balance regardless of interleaving or individual failures.
func TestTransfer_ConcurrentTransfersConserveTotalBalance(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, store, store)

	a := store.CreateAccount("alice", 500)
	b := store.CreateAccount("bob", 500)

	const rounds = 50

	var wg sync.WaitGroup
	wg.Add(2 * rounds)
	for i := 0; i < rounds; i++ {
		go func() {
			defer wg.Done()
			_, _ = service.Transfer(ctx, Input{SenderID: a.ID, RecipientUsername: "bob", Amount: 7})
		}()
		go func() {
			defer wg.Done()
			_, _ = service.Transfer(ctx, Input{SenderID: b.ID, RecipientUsername: "alice", Amount: 11})
		}()
	}
	wg.Wait()

	aAfter, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	bAfter, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), aAfter.Balance+bAfter.Balance)
	assert.GreaterOrEqual(t, aAfter.Balance, int64(0))
	assert.GreaterOrEqual(t, bAfter.Balance, int64(0))
}

// Transfers are not idempotent: two identical calls are two independent
// attempts, each with its own record and its own debit.
func TestTransfer_IdenticalCallsDebitTwice(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, store, store)

	a := store.CreateAccount("alice", 100)
	b := store.CreateAccount("bob", 0)

	first, err := service.Transfer(ctx, Input{SenderID: a.ID, RecipientUsername: "bob", Amount: 40})
	require.NoError(t, err)
	second, err := service.Transfer(ctx, Input{SenderID: a.ID, RecipientUsername: "bob", Amount: 40})
	require.NoError(t, err)

	assert.NotEqual(t, first.Record.ID, second.Record.ID)

	aAfter, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	bAfter, err := store.GetByID(ctx, b.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(20), aAfter.Balance)
	assert.Equal(t, int64(80), bAfter.Balance)

	records, err := store.ListByAccount(ctx, a.ID, mustNormalize(t, domain.ListFilter{}))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

// A recipient deleted before the call never resolves, so the attempt
// stage is not entered and the sender's balance stays put.
func TestTransfer_DeletedRecipientDoesNotResolve(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	service := NewService(store, store, store)

	a := store.CreateAccount("alice", 100)
	b := store.CreateAccount("bob", 100)
	store.DeleteAccount(b.ID)

	out, err := service.Transfer(ctx, Input{SenderID: a.ID, RecipientUsername: "bob", Amount: 30})

	assert.ErrorIs(t, err, domain.ErrUnknownRecipient)
	assert.Nil(t, out)

	aAfter, err := store.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), aAfter.Balance)
}

func mustNormalize(t *testing.T, filter domain.ListFilter) domain.ListFilter {
	t.Helper()
	normalized, err := filter.Normalize()
	require.NoError(t, err)
	return normalized
}
