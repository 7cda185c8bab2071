package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/simaogato/fundflow-backend/internal/domain"
	"github.com/simaogato/fundflow-backend/internal/logging"
)

const accountLocalsKey = "account"

// RequestLogger gives every request a child logger tagged with a request
// id, injects it into the request context, and logs the request outcome.
func RequestLogger(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.With(zap.String("request_id", uuid.NewString()))
		c.SetUserContext(logging.WithLogger(c.UserContext(), log))

		start := time.Now()
		err := c.Next()

		log.Info("request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)

		return err
	}
}

// Protected resolves the bearer API key to an account and stores it in
// request locals for the handlers. Requests without a valid key get 401.
func Protected(resolver domain.IdentityResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing API key"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization header format"})
		}

		account, err := resolver.ResolveAPIKey(c.UserContext(), parts[1])
		if err != nil {
			// Only an unknown key is an auth rejection; a resolver
			// failure is an infrastructure outcome, not a 401.
			if errors.Is(err, domain.ErrAccountNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid API key"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
		}

		c.Locals(accountLocalsKey, account)

		return c.Next()
	}
}

// callerAccount returns the account resolved by Protected.
func callerAccount(c *fiber.Ctx) *domain.Account {
	account, _ := c.Locals(accountLocalsKey).(*domain.Account)
	return account
}
