package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/fundflow/go-transfer/internal/controller"
)

// InitializeRoutes mounts every route on the app. The controller is passed
// in explicitly; handlers close over it.
func InitializeRoutes(app *fiber.App, ctrl *controller.Controller) {
	ctx := context.Background()

	app.Get("/status", StatusHandler(ctrl))
	app.Get("/transfer/1.0/clients", GetClientsHandler(ctx, ctrl))
	app.Get("/transfer/1.0/client/:clientId", GetClientHandler(ctx, ctrl))
	app.Get("/transfer/1.0/client/:clientId/accounts", GetClientAccountsHandler(ctx, ctrl))
	app.Get("/transfer/1.0/account/:accountId", GetAccountHandler(ctx, ctrl))
	app.Get("/transfer/1.0/account/:accountId/transactions", GetAccountEntriesHandler(ctx, ctrl))
	app.Post("/transfer/1.0/transfer", TransferHandler(ctx, ctrl))
}
