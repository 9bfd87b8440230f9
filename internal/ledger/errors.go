package ledger

import "errors"

var (
	// ErrAccountNotFound is returned when an account id does not resolve.
	ErrAccountNotFound = errors.New("account not found")

	// ErrClientNotFound is returned when a client id does not resolve.
	ErrClientNotFound = errors.New("client not found")

	// ErrInsufficientFunds is returned by a guarded commit that would drive
	// the debited balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidEntry is returned when a commit is handed an entry without
	// an account id or entry id.
	ErrInvalidEntry = errors.New("invalid ledger entry")
)
