package transfer

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fundflow/go-transfer/internal/ledger"
)

// Processor turns a transfer request into a committed ledger movement or a
// precise failure. It never lets an error escape: every outcome is a
// Result, and infrastructure failures during commit are logged here and
// reported to the caller as a bare 503.
type Processor struct {
	store ledger.Store
	log   *zap.Logger
}

// NewProcessor builds a processor over the given store.
func NewProcessor(store ledger.Store, log *zap.Logger) *Processor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{store: store, log: log}
}

// Transfer runs the full pipeline: validation, account resolution, funds
// check, entry construction, atomic commit.
//
// The funds check here reads the balance before the commit's exclusive
// scope is entered; the store's in-commit guard closes the window that
// leaves open (see ledger.GuardNegativeBalance).
func (p *Processor) Transfer(ctx context.Context, req *Request) Result {
	if err := Validate(req); err != nil {
		return BadRequest
	}

	from, err := p.store.Account(ctx, req.FromAccount)
	if err != nil {
		return Result{Code: 404, Message: "From Account not found"}
	}
	if !from.Open {
		return Result{Code: 404, Message: "From Account not open"}
	}

	to, err := p.store.Account(ctx, req.ToAccount)
	if err != nil {
		return Result{Code: 404, Message: "To Account not found"}
	}
	if !to.Open {
		return Result{Code: 404, Message: "To Account not open"}
	}

	amount := ledger.FromMinorUnits(req.Amount, from.Currency)

	if from.Balance.LessThan(amount) {
		return Result{Code: 520, Message: "Insufficient funds"}
	}

	now := time.Now().UTC()
	debit := ledger.Entry{
		AccountID: from.AccountID,
		EntryID:   uuid.NewString(),
		Amount:    amount.Neg(),
		Date:      now,
		Reference: to.AccountID,
	}
	credit := ledger.Entry{
		AccountID: to.AccountID,
		EntryID:   uuid.NewString(),
		Amount:    amount,
		Date:      now,
		Reference: debit.EntryID,
	}

	if err := p.store.CommitPair(ctx, debit, credit); err != nil {
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			return Result{Code: 520, Message: "Insufficient funds"}
		}
		p.log.Error("commit failed",
			zap.String("fromAccount", from.AccountID),
			zap.String("toAccount", to.AccountID),
			zap.Error(err),
		)
		return Result{Code: 503, Message: "Internal Error"}
	}

	return Result{Code: 200, Message: "OK", TransactionID: debit.EntryID}
}
