package middleware

import (
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/gofiber/fiber/v2"
)

const adminClaimsKey = "admin_claims"

// TokenParser validates a session token.
type TokenParser interface {
	ParseToken(token string) (*service.AdminClaims, error)
}

// Auth admits requests carrying a valid admin token, read from the
// Authorization bearer header first and the session cookie second.
func Auth(parser TokenParser, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(cookieName)
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
		}

		c.Locals(adminClaimsKey, claims)
		return c.Next()
	}
}

// AdminClaims returns the claims stored by Auth, or nil.
func AdminClaims(c *fiber.Ctx) *service.AdminClaims {
	claims, _ := c.Locals(adminClaimsKey).(*service.AdminClaims)
	return claims
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
