package api

import (
	"github.com/gofiber/fiber/v3"

	"github.com/fundflow/go-transfer/internal/controller"
)

// StatusHandler reports the service status and request count.
func StatusHandler(ctrl *controller.Controller) fiber.Handler {
	return func(c fiber.Ctx) error {
		return c.JSON(ctrl.Status())
	}
}
