package middleware

import (
	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/gofiber/fiber/v2"
)

const sideKey = "side"

// EnsureSide reads the acting side from the X-Player-Side header or the side
// query parameter. A request without one acts for whoever is to move.
func EnsureSide() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals(sideKey) != nil {
			return c.Next()
		}

		raw := c.Get("X-Player-Side")
		if raw == "" {
			raw = c.Query("side")
		}
		if raw == "" {
			return c.Next()
		}

		side, err := model.ParseColor(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
				"code":  "invalidSide",
			})
		}
		c.Locals(sideKey, side)
		return c.Next()
	}
}

// Side returns the side stored by EnsureSide, nil when the request named none.
func Side(c *fiber.Ctx) *model.Color {
	side, ok := c.Locals(sideKey).(model.Color)
	if !ok {
		return nil
	}
	return &side
}
