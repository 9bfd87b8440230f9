package api

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/fundflow/go-transfer/internal/controller"
	"github.com/fundflow/go-transfer/internal/transfer"
)

// TransferHandler executes a transfer. The HTTP status is 200 whenever the
// body could be parsed; the logical outcome travels in the result body.
func TransferHandler(ctx context.Context, ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req transfer.Request
		if err := c.Bind().Body(&req); err != nil {
			return fiber.ErrBadRequest
		}

		return c.JSON(ctrl.Transfer(ctx, &req))
	}
}
