package transfer

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fundflow/go-transfer/internal/ledger"
)

// The processor reads the balance for its funds check before the commit's
// exclusive scope, so concurrent transfers from one account can all pass
// the check against the same snapshot. With the store guard on (the
// default) the re-check inside the commit keeps the balance at or above
// zero and the losers come back as 520.
func TestConcurrentOverdrawIsHeldAtZero(t *testing.T) {
	store := ledger.NewMemStore()
	store.PutAccount(ledger.Account{
		AccountID: "drained",
		Balance:   decimal.New(1000, -2), // 10.00
		Currency:  "USD",
		Open:      true,
	})
	store.PutAccount(ledger.Account{
		AccountID: "sink",
		Balance:   decimal.Zero,
		Currency:  "USD",
		Open:      true,
	})
	p := NewProcessor(store, nil)
	ctx := context.Background()

	// 50 transfers of 1.00 against a 10.00 balance
	const attempts = 50
	results := make([]Result, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = p.Transfer(ctx, &Request{FromAccount: "drained", ToAccount: "sink", Amount: 100})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, r := range results {
		switch r.Code {
		case 200:
			ok++
		case 520:
			insufficient++
		default:
			t.Errorf("unexpected result %+v", r)
		}
	}
	assert.Equal(t, 10, ok)
	assert.Equal(t, attempts-10, insufficient)

	from, err := store.Account(ctx, "drained")
	require.NoError(t, err)
	assert.True(t, from.Balance.IsZero(), "got %s", from.Balance)

	sink, err := store.Account(ctx, "sink")
	require.NoError(t, err)
	assert.True(t, sink.Balance.Equal(decimal.New(1000, -2)), "got %s", sink.Balance)

	entries, err := store.Entries(ctx, "drained")
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
