package middleware

import (
	"strconv"
	"time"

	"github.com/cinematik/backend/internal/metrics"
	"github.com/gofiber/fiber/v2"
)

func MetricsMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		route := ctx.Route().Path
		method := ctx.Method()
		status := strconv.Itoa(ctx.Response().StatusCode())

		metrics.RequestsTotal.WithLabelValues(route, method, status).Inc()
		metrics.ReqDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		return err
	}
}
