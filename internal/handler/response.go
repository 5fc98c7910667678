package handler

import (
	"errors"
	"time"

	"go-inventory-ledger/internal/service"
	"go-inventory-ledger/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// respondError maps service errors to HTTP statuses. Anything unrecognised is
// a storage failure and is reported without detail.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case service.IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidPatch):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// parseBody decodes the JSON body into out and validates it. It returns the
// 400 response body on failure and nil on success.
func parseBody(c *fiber.Ctx, out interface{}) fiber.Map {
	if err := c.BodyParser(out); err != nil {
		return fiber.Map{"error": "Invalid JSON"}
	}
	if errs := validator.ValidateStruct(out); len(errs) > 0 {
		return fiber.Map{"error": errs[0].Error(), "details": errs}
	}
	return nil
}

// parseTimeQuery reads an optional RFC 3339 or YYYY-MM-DD query parameter.
// A bare date used as an upper bound covers the whole day.
func parseTimeQuery(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		t = t.UTC()
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
