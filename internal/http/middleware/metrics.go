package middleware

import (
	"strconv"
	"time"

	"github.com/clooyzi-tech/clooyzi-web-solutions/internal/infra/prometheus"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request counts and latency per matched route.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		// Route() is only meaningful after routing; unmatched paths share one label.
		route := c.Route().Path
		if status == fiber.StatusNotFound && route == "/" {
			route = "unmatched"
		}

		prometheus.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		prometheus.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
