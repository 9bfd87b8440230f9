// Package pg implements the ledger store over Postgres. Atomicity comes
// from a single transaction per commit, and the per-account serialization
// from row locks taken in ascending account-id order.
package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/fundflow/go-transfer/internal/ledger"
)

// Store is a Postgres-backed ledger.Store and ledger.Directory.
type Store struct {
	pool  *pgxpool.Pool
	guard bool
}

// Option configures a Store.
type Option func(*Store)

// GuardNegativeBalance controls the in-commit funds re-check, mirroring the
// memory store's option. On by default.
func GuardNegativeBalance(enabled bool) Option {
	return func(s *Store) {
		s.guard = enabled
	}
}

// New builds a store over an existing pool.
func New(pool *pgxpool.Pool, opts ...Option) *Store {
	s := &Store{pool: pool, guard: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateSchema creates the tables if they do not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS client (
			client_id VARCHAR(36) PRIMARY KEY,
			name VARCHAR(64) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS account (
			account_id VARCHAR(36) PRIMARY KEY,
			balance NUMERIC(10, 3) NOT NULL,
			currency CHAR(3) NOT NULL,
			open BOOLEAN NOT NULL,
			client_id VARCHAR(36) NOT NULL REFERENCES client (client_id)
		)`,
		`CREATE TABLE IF NOT EXISTS entry (
			account_id VARCHAR(36) NOT NULL REFERENCES account (account_id),
			entry_id VARCHAR(36) NOT NULL,
			amount NUMERIC(10, 3) NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			reference VARCHAR(36),
			PRIMARY KEY (account_id, entry_id)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Account implements ledger.Store.
func (s *Store) Account(ctx context.Context, accountID string) (ledger.Account, error) {
	var a ledger.Account
	err := s.pool.QueryRow(ctx,
		`SELECT account_id, balance, currency, open, client_id FROM account WHERE account_id = $1`,
		accountID,
	).Scan(&a.AccountID, &a.Balance, &a.Currency, &a.Open, &a.ClientID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Account{}, ledger.ErrAccountNotFound
	}
	if err != nil {
		return ledger.Account{}, err
	}
	return a, nil
}

// CommitPair implements ledger.Store.
func (s *Store) CommitPair(ctx context.Context, debit, credit ledger.Entry) error {
	for _, e := range []ledger.Entry{debit, credit} {
		if e.AccountID == "" || e.EntryID == "" {
			return ledger.ErrInvalidEntry
		}
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// lock both rows in ascending id order to avoid deadlock with a
	// concurrent commit over the same pair in the opposite direction
	first, second := debit.AccountID, credit.AccountID
	if second < first {
		first, second = second, first
	}
	ids := []string{first, second}
	if first == second {
		ids = ids[:1]
	}
	balances := make(map[string]decimal.Decimal, 2)
	for _, id := range ids {
		var balance decimal.Decimal
		err := tx.QueryRow(ctx,
			`SELECT balance FROM account WHERE account_id = $1 FOR UPDATE`, id,
		).Scan(&balance)
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("account %s: %w", id, ledger.ErrAccountNotFound)
		}
		if err != nil {
			return err
		}
		balances[id] = balance
	}

	if s.guard {
		if balances[debit.AccountID].Add(debit.Amount).IsNegative() {
			return ledger.ErrInsufficientFunds
		}
	}

	for _, e := range []ledger.Entry{debit, credit} {
		if _, err := tx.Exec(ctx,
			`UPDATE account SET balance = balance + $1 WHERE account_id = $2`,
			e.Amount, e.AccountID,
		); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO entry (account_id, entry_id, amount, date, reference) VALUES ($1, $2, $3, $4, $5)`,
			e.AccountID, e.EntryID, e.Amount, e.Date, e.Reference,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Clients implements ledger.Directory.
func (s *Store) Clients(ctx context.Context) ([]ledger.Client, error) {
	rows, err := s.pool.Query(ctx, `SELECT client_id, name FROM client ORDER BY client_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Client, 0)
	for rows.Next() {
		var c ledger.Client
		if err := rows.Scan(&c.ClientID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Client implements ledger.Directory.
func (s *Store) Client(ctx context.Context, clientID string) (ledger.Client, error) {
	var c ledger.Client
	err := s.pool.QueryRow(ctx,
		`SELECT client_id, name FROM client WHERE client_id = $1`, clientID,
	).Scan(&c.ClientID, &c.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return ledger.Client{}, ledger.ErrClientNotFound
	}
	if err != nil {
		return ledger.Client{}, err
	}
	return c, nil
}

// Accounts implements ledger.Directory.
func (s *Store) Accounts(ctx context.Context, clientID string) ([]ledger.Account, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT account_id, balance, currency, open, client_id FROM account WHERE client_id = $1 ORDER BY account_id`,
		clientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Account, 0)
	for rows.Next() {
		var a ledger.Account
		if err := rows.Scan(&a.AccountID, &a.Balance, &a.Currency, &a.Open, &a.ClientID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Entries implements ledger.Directory.
func (s *Store) Entries(ctx context.Context, accountID string) ([]ledger.Entry, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT account_id, entry_id, amount, date, reference FROM entry WHERE account_id = $1 ORDER BY date, entry_id`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ledger.Entry, 0)
	for rows.Next() {
		var e ledger.Entry
		var ref *string
		if err := rows.Scan(&e.AccountID, &e.EntryID, &e.Amount, &e.Date, &ref); err != nil {
			return nil, err
		}
		if ref != nil {
			e.Reference = *ref
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
