package handler

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/app/service"
	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/http/middleware"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const msgInvalidBody = "Invalid request body"

// actor names the admin behind an authenticated request in audit log lines.
func actor(c *fiber.Ctx) zap.Field {
	if claims := middleware.AdminClaims(c); claims != nil {
		return zap.String("admin", claims.Email)
	}
	return zap.Skip()
}

// statusFor maps a service error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

// writeError renders err as {error}. Store failures are logged with their
// cause; the client only sees the service message or fallback.
func writeError(c *fiber.Ctx, log *zap.Logger, err error, fallback string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	}
	return c.Status(status).JSON(fiber.Map{"error": service.Message(err, fallback)})
}

// writePublicError is writeError with the success flag the ad endpoints carry.
func writePublicError(c *fiber.Ctx, log *zap.Logger, err error, fallback string) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(fallback, zap.Error(err), zap.String("path", c.Path()))
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   service.Message(err, fallback),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}

// parseBody decodes a JSON body into out. An empty body leaves out untouched.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		c.Request().Header.SetContentType(fiber.MIMEApplicationJSON)
	}
	return c.BodyParser(out)
}

// pathID reads the :id route parameter as a positive integer.
func pathID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// looseUint accepts a JSON number or a numeric string. present reports
// whether any non-empty value was supplied at all.
func looseUint(raw any) (value uint, present, ok bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false, false
	case float64:
		if v <= 0 || v != math.Trunc(v) || v > math.MaxUint32 {
			return 0, true, false
		}
		return uint(v), true, true
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false, false
		}
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil || n == 0 {
			return 0, true, false
		}
		return uint(n), true, true
	default:
		return 0, true, false
	}
}

// looseInt is looseUint for optional counts; anything unusable reads as 0.
func looseInt(raw any) int {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt32 || v < math.MinInt32 {
			return 0
		}
		return int(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
