package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/fundflow/go-transfer/internal/controller"
	"github.com/fundflow/go-transfer/internal/helper"
	"github.com/fundflow/go-transfer/internal/ledger"
)

// GetAccountHandler resolves a single account by id.
func GetAccountHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Params("accountId")
		if id == "" {
			return fiber.ErrBadRequest
		}

		account, err := ctrl.Account(ctx, id)
		if err != nil {
			return mapLookupError(c, err, "Account not found")
		}
		return c.JSON(account)
	}
}

// GetClientHandler resolves a single client by id.
func GetClientHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Params("clientId")
		if id == "" {
			return fiber.ErrBadRequest
		}

		client, err := ctrl.Client(ctx, id)
		if err != nil {
			return mapLookupError(c, err, "Client not found")
		}
		return c.JSON(client)
	}
}

// GetClientsHandler lists all clients in a pagination envelope.
func GetClientsHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		pagination := helper.GetPagination[ledger.Client](c)

		clients, err := ctrl.Clients(ctx)
		if err != nil {
			return mapLookupError(c, err, "")
		}

		total := len(clients)
		pagination.Total = &total
		pagination.Items = helper.Page(clients, pagination.Page, pagination.Size)
		return c.JSON(pagination)
	}
}

// GetClientAccountsHandler lists the accounts owned by a client.
func GetClientAccountsHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Params("clientId")
		if id == "" {
			return fiber.ErrBadRequest
		}

		accounts, err := ctrl.Accounts(ctx, id)
		if err != nil {
			return mapLookupError(c, err, "")
		}
		return c.JSON(accounts)
	}
}

// GetAccountEntriesHandler lists an account's ledger entries in a
// pagination envelope.
func GetAccountEntriesHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Params("accountId")
		if id == "" {
			return fiber.ErrBadRequest
		}

		pagination := helper.GetPagination[ledger.Entry](c)

		entries, err := ctrl.Entries(ctx, id)
		if err != nil {
			return mapLookupError(c, err, "Account not found")
		}

		total := len(entries)
		pagination.Total = &total
		pagination.Items = helper.Page(entries, pagination.Page, pagination.Size)
		return c.JSON(pagination)
	}
}

func mapLookupError(c fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, controller.ErrInactive):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Service is unavailable",
		})
	case errors.Is(err, ledger.ErrAccountNotFound), errors.Is(err, ledger.ErrClientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": notFoundMsg,
		})
	default:
		return err
	}
}
