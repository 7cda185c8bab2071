package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// NewApp assembles the fiber application: request logging on every
// route, API-key auth in front of the ledger operations.
func NewApp(handler *Handler, logger *zap.Logger, resolver domain.IdentityResolver) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(RequestLogger(logger))

	api := app.Group("/", Protected(resolver))
	api.Post("/transfer", handler.Transfer)
	api.Get("/balance", handler.GetBalance)
	api.Patch("/balance", handler.AdjustBalance)
	api.Get("/transactions", handler.ListTransactions)

	return app
}
