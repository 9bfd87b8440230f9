package ledger

import (
	"github.com/shopspring/decimal"
)

// Account is a single balance-carrying account. The balance is only ever
// adjusted by a Store commit; callers receive value copies and must not
// expect writes through them to take effect.
type Account struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Open      bool            `json:"open"`
	ClientID  string          `json:"clientId"`
}

// Client owns one or more accounts. The transfer path never dereferences
// it; it exists for the directory endpoints.
type Client struct {
	ClientID string `json:"clientId"`
	Name     string `json:"name"`
}
