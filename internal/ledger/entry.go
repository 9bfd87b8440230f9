package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one signed movement against one account. Entries are immutable
// once committed; the log is append-only.
//
// Reference links the two halves of a transfer: the debit entry carries the
// counterpart account id, the credit entry carries the debit's entry id.
type Entry struct {
	AccountID string          `json:"accountId"`
	EntryID   string          `json:"entryId"`
	Amount    decimal.Decimal `json:"amount"`
	Date      time.Time       `json:"date"`
	Reference string          `json:"reference,omitempty"`
}
