package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"storefront/internal/repositories"
)

// orderDateLayout is the wire format for order dates, e.g. "10-09-2025".
const orderDateLayout = "02-01-2006"

// parseIDParam reads a numeric path parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s'", name, raw)
	}
	return uint(id), nil
}

func parseOrderDate(raw string) (time.Time, error) {
	date, err := time.Parse(orderDateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("order_date must be in %s format", orderDateLayout)
	}
	return date, nil
}

// validationErrorMap flattens validator errors into a field -> message map.
func validationErrorMap(err error) map[string]string {
	messages := make(map[string]string)
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range errs {
			messages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return messages
}

// failWith maps service errors onto HTTP responses: a missing entity is a
// 404, anything else an opaque 500.
func failWith(c *fiber.Ctx, err error, message string) error {
	if repositories.IsNotFound(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": err.Error(),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
