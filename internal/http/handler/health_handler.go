package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const readinessTimeout = 2 * time.Second

// Check probes one dependency for readiness.
type Check struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthHandler reports liveness and dependency readiness.
type HealthHandler struct {
	logger  *zap.Logger
	service string
	checks  []Check
	now     func() time.Time
}

func NewHealthHandler(serviceName string, checks []Check, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{
		logger:  logger,
		service: serviceName,
		checks:  checks,
		now:     time.Now,
	}
}

// Register wires /health and /ready onto the root router.
func (h *HealthHandler) Register(router fiber.Router) {
	router.Get("/health", h.Health)
	router.Get("/ready", h.Ready)
}

// Health reports liveness only; it never touches dependencies.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service": h.service,
		"status":  "ok",
		"time":    h.now().UTC().Format(time.RFC3339),
	})
}

// Ready runs every check and answers 503 when any of them fails.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	ready := true
	results := make(fiber.Map, len(h.checks))
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			ready = false
			results[check.Name] = "unavailable"
			h.logger.Warn("readiness check failed", zap.String("check", check.Name), zap.Error(err))
			continue
		}
		results[check.Name] = "ok"
	}

	status := "ready"
	code := fiber.StatusOK
	if !ready {
		status = "not ready"
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": results,
	})
}
