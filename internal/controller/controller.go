package controller

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/fundflow/go-transfer/internal/ledger"
	"github.com/fundflow/go-transfer/internal/transfer"
)

// ErrInactive is returned by lookups while the service has not been
// activated.
var ErrInactive = errors.New("service is not active")

// Status reports the service state and how many requests it has seen since
// start up.
type Status struct {
	Status       string `json:"status"`
	RequestCount int64  `json:"requestCount"`
}

// Controller fronts every operation of the service. It is constructed once
// at startup and handed to the request handlers explicitly; it starts
// inactive and refuses work until Activate is called.
type Controller struct {
	store     ledger.Store
	directory ledger.Directory
	processor *transfer.Processor

	active   atomic.Bool
	requests atomic.Int64
}

// New wires a controller over a store. The directory may be the same value
// as the store when it implements both.
func New(store ledger.Store, directory ledger.Directory, log *zap.Logger) *Controller {
	return &Controller{
		store:     store,
		directory: directory,
		processor: transfer.NewProcessor(store, log),
	}
}

// Activate marks the service as ready to accept work.
func (c *Controller) Activate() {
	c.active.Store(true)
}

// Status reports the current status. Calling it counts as a request.
func (c *Controller) Status() Status {
	s := Status{Status: "inactive", RequestCount: c.requests.Add(1)}
	if c.active.Load() {
		s.Status = "active"
	}
	return s
}

// Transfer performs a transfer, or reports the service unavailable when not
// yet activated.
func (c *Controller) Transfer(ctx context.Context, req *transfer.Request) transfer.Result {
	if !c.active.Load() {
		return transfer.Unavailable
	}
	c.requests.Add(1)
	return c.processor.Transfer(ctx, req)
}

// Account resolves one account.
func (c *Controller) Account(ctx context.Context, accountID string) (ledger.Account, error) {
	if !c.active.Load() {
		return ledger.Account{}, ErrInactive
	}
	c.requests.Add(1)
	return c.store.Account(ctx, accountID)
}

// Client resolves one client.
func (c *Controller) Client(ctx context.Context, clientID string) (ledger.Client, error) {
	if !c.active.Load() {
		return ledger.Client{}, ErrInactive
	}
	c.requests.Add(1)
	return c.directory.Client(ctx, clientID)
}

// Clients lists all clients.
func (c *Controller) Clients(ctx context.Context) ([]ledger.Client, error) {
	if !c.active.Load() {
		return nil, ErrInactive
	}
	c.requests.Add(1)
	return c.directory.Clients(ctx)
}

// Accounts lists a client's accounts.
func (c *Controller) Accounts(ctx context.Context, clientID string) ([]ledger.Account, error) {
	if !c.active.Load() {
		return nil, ErrInactive
	}
	c.requests.Add(1)
	return c.directory.Accounts(ctx, clientID)
}

// Entries lists an account's ledger entries.
func (c *Controller) Entries(ctx context.Context, accountID string) ([]ledger.Entry, error) {
	if !c.active.Load() {
		return nil, ErrInactive
	}
	c.requests.Add(1)
	return c.directory.Entries(ctx, accountID)
}
