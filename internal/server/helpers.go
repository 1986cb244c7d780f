package server

import (
	"strconv"

	"postly/internal/models"

	"github.com/gofiber/fiber/v2"
)

// parseID extracts the :id route parameter as a uint.
func parseID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid id")
	}
	return uint(id), nil
}
