package middleware

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS allows the ad endpoints to be called from any publisher page. When
// allowOrigins is non-empty, only those origins are echoed back and
// credentials are allowed so the admin cookie can travel.
func CORS(allowOrigins []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		switch {
		case len(allowOrigins) == 0:
			c.Set(fiber.HeaderAccessControlAllowOrigin, "*")
		case origin != "" && slices.Contains(allowOrigins, origin):
			c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
			c.Set(fiber.HeaderAccessControlAllowCredentials, "true")
			c.Vary(fiber.HeaderOrigin)
		}

		c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		c.Set(fiber.HeaderAccessControlAllowHeaders, strings.Join([]string{
			"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader,
		}, ", "))
		c.Set(fiber.HeaderAccessControlExposeHeaders, "Content-Length, Content-Type, "+RequestIDHeader)
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}

		return c.Next()
	}
}
