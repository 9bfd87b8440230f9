package ledger

import "context"

// Store is the narrow contract the transfer path depends on: resolve an
// account and commit a linked debit/credit pair atomically.
type Store interface {
	// Account returns a copy of the account, or ErrAccountNotFound.
	Account(ctx context.Context, accountID string) (Account, error)

	// CommitPair applies both balance deltas and appends both entries as
	// one atomic unit. Either both entries become visible and both balances
	// reflect their deltas, or nothing changes. Commits touching a common
	// account are serialized; disjoint pairs may proceed concurrently.
	CommitPair(ctx context.Context, debit, credit Entry) error
}

// Directory serves the read-only lookup endpoints. All methods return
// owned, fully materialized values.
type Directory interface {
	Clients(ctx context.Context) ([]Client, error)
	Client(ctx context.Context, clientID string) (Client, error)
	Accounts(ctx context.Context, clientID string) ([]Account, error)
	Entries(ctx context.Context, accountID string) ([]Entry, error)
}
