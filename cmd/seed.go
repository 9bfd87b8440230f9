package main

import (
	"github.com/shopspring/decimal"

	"github.com/fundflow/go-transfer/internal/ledger"
)

// seedDemoData populates the in-memory store with a small directory of
// clients and accounts, used when no database is configured.
func seedDemoData(store *ledger.MemStore) {
	clients := []ledger.Client{
		{ClientID: "046b6c7f-0b8a-43b9-b35d-6489e6daee91", Name: "Alice Example"},
		{ClientID: "9c858901-8a57-4791-81fe-4c455b099bc9", Name: "Bob Example"},
	}
	for _, c := range clients {
		store.PutClient(c)
	}

	accounts := []ledger.Account{
		{
			AccountID: "87a4d7aa-385a-11e5-a151-feff819cdc9f",
			Balance:   decimal.New(20000, -2),
			Currency:  "USD",
			Open:      true,
			ClientID:  clients[0].ClientID,
		},
		{
			AccountID: "87a4dd04-385a-11e5-a151-feff819cdc9f",
			Balance:   decimal.New(5000, -2),
			Currency:  "USD",
			Open:      true,
			ClientID:  clients[0].ClientID,
		},
		{
			AccountID: "adfd52b2-389e-11e5-a151-feff819cdc9f",
			Balance:   decimal.New(100000, -2),
			Currency:  "EUR",
			Open:      true,
			ClientID:  clients[1].ClientID,
		},
		{
			AccountID: "adfd560e-389e-11e5-a151-feff819cdc9f",
			Balance:   decimal.Zero,
			Currency:  "EUR",
			Open:      false,
			ClientID:  clients[1].ClientID,
		},
	}
	for _, a := range accounts {
		store.PutAccount(a)
	}
}
