package util

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP resolves the requester address: the first X-Forwarded-For entry,
// then X-Real-IP, then the socket peer.
func ClientIP(c *fiber.Ctx) string {
	if xff := c.Get(fiber.HeaderXForwardedFor); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
		return ip
	}
	return c.IP()
}
