package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemStore is an in-memory Store and Directory. It keeps one balance and an
// append-only entry log per account, serialized by a per-account mutex.
// A commit locks both participating accounts in ascending account-id order
// so that two transfers over the same pair in opposite directions cannot
// deadlock, while commits over disjoint pairs run concurrently.
type MemStore struct {
	mu       sync.RWMutex
	accounts map[string]*memAccount
	clients  map[string]Client
	guard    bool
}

type memAccount struct {
	mu      sync.Mutex
	account Account
	entries []Entry
}

// MemStoreOption configures a MemStore.
type MemStoreOption func(*MemStore)

// GuardNegativeBalance controls whether CommitPair re-checks funds inside
// the exclusive commit scope. The processor's own funds check runs before
// the commit locks are taken, so without this guard two concurrent
// transfers from the same account can both pass their check and drive the
// balance negative. On by default; switch off to reproduce that window.
func GuardNegativeBalance(enabled bool) MemStoreOption {
	return func(s *MemStore) {
		s.guard = enabled
	}
}

// NewMemStore returns an empty store. Populate it with PutClient and
// PutAccount before serving traffic.
func NewMemStore(opts ...MemStoreOption) *MemStore {
	s := &MemStore{
		accounts: make(map[string]*memAccount),
		clients:  make(map[string]Client),
		guard:    true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PutClient adds or replaces a client record.
func (s *MemStore) PutClient(c Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.ClientID] = c
}

// PutAccount adds or replaces an account. Intended for seeding and tests;
// live balances only move through CommitPair.
func (s *MemStore) PutAccount(a Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.AccountID] = &memAccount{account: a}
}

// Account implements Store.
func (s *MemStore) Account(ctx context.Context, accountID string) (Account, error) {
	state, err := s.lookup(accountID)
	if err != nil {
		return Account{}, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	return state.account, nil
}

// CommitPair implements Store. Both entries are validated before any state
// is touched, so a failure never leaves a partial commit behind.
func (s *MemStore) CommitPair(ctx context.Context, debit, credit Entry) error {
	for _, e := range []Entry{debit, credit} {
		if e.AccountID == "" || e.EntryID == "" {
			return ErrInvalidEntry
		}
	}

	debitState, err := s.lookup(debit.AccountID)
	if err != nil {
		return fmt.Errorf("debit account %s: %w", debit.AccountID, err)
	}
	creditState, err := s.lookup(credit.AccountID)
	if err != nil {
		return fmt.Errorf("credit account %s: %w", credit.AccountID, err)
	}

	unlock := lockOrdered(debitState, creditState)
	defer unlock()

	if s.guard {
		if debitState.account.Balance.Add(debit.Amount).IsNegative() {
			return ErrInsufficientFunds
		}
	}

	debitState.account.Balance = debitState.account.Balance.Add(debit.Amount)
	debitState.entries = append(debitState.entries, debit)
	creditState.account.Balance = creditState.account.Balance.Add(credit.Amount)
	creditState.entries = append(creditState.entries, credit)

	return nil
}

// Clients implements Directory.
func (s *MemStore) Clients(ctx context.Context) ([]Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClientID < out[j].ClientID })
	return out, nil
}

// Client implements Directory.
func (s *MemStore) Client(ctx context.Context, clientID string) (Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[clientID]
	if !ok {
		return Client{}, ErrClientNotFound
	}
	return c, nil
}

// Accounts implements Directory.
func (s *MemStore) Accounts(ctx context.Context, clientID string) ([]Account, error) {
	s.mu.RLock()
	states := make([]*memAccount, 0, len(s.accounts))
	for _, state := range s.accounts {
		states = append(states, state)
	}
	s.mu.RUnlock()

	out := make([]Account, 0, len(states))
	for _, state := range states {
		state.mu.Lock()
		if state.account.ClientID == clientID {
			out = append(out, state.account)
		}
		state.mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// Entries implements Directory. The returned slice is owned by the caller.
func (s *MemStore) Entries(ctx context.Context, accountID string) ([]Entry, error) {
	state, err := s.lookup(accountID)
	if err != nil {
		return nil, err
	}

	state.mu.Lock()
	defer state.mu.Unlock()
	out := make([]Entry, len(state.entries))
	copy(out, state.entries)
	return out, nil
}

func (s *MemStore) lookup(accountID string) (*memAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.accounts[accountID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return state, nil
}

// lockOrdered takes both account locks in ascending account-id order and
// returns the matching unlock. A pair naming the same account twice is
// locked once.
func lockOrdered(a, b *memAccount) func() {
	if a == b {
		a.mu.Lock()
		return a.mu.Unlock
	}

	first, second := a, b
	if second.account.AccountID < first.account.AccountID {
		first, second = second, first
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
