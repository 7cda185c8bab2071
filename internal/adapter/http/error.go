package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/simaogato/fundflow-backend/internal/domain"
)

// mapError translates a domain error into the HTTP status code reported
// to the caller. Validation and domain rejections are client errors;
// anything unrecognized is an infrastructure failure and stays a 500,
// never conflated with a validation outcome.
func mapError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrUnknownRecipient),
		errors.Is(err, domain.ErrSelfTransfer),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDateRange),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrInvalidOffset):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRecipientGone):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrAccountNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as a JSON error response. Internal failure
// details are not leaked to the caller.
func writeError(c *fiber.Ctx, err error) error {
	status := mapError(err)

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		message = "internal server error"
	}

	return c.Status(status).JSON(fiber.Map{"error": message})
}
