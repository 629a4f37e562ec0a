package handler

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/invoice-dashboard/internal/middleware"
	"github.com/deppfellow/invoice-dashboard/internal/server"
	"github.com/labstack/echo/v4"
)

// pinger is one dependency the health endpoint checks.
type pinger interface {
	Ping(ctx context.Context) error
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// dependencyCheck is a named dependency. Optional dependencies are
// reported but never make the service unhealthy.
type dependencyCheck struct {
	name     string
	pinger   pinger
	optional bool
}

// HealthHandler exposes the status endpoint used by load balancers and
// uptime monitors.
type HealthHandler struct {
	Handler
	checks []dependencyCheck
}

// NewHealthHandler checks the dependencies named by the health check
// config. Redis is optional because the app degrades without it.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{Handler: NewHandler(s)}

	cfg := s.Config.Observability.HealthChecks
	if !cfg.Enabled {
		return h
	}

	if slices.Contains(cfg.Checks, "database") && s.DB != nil {
		h.checks = append(h.checks, dependencyCheck{name: "database", pinger: s.DB.Pool})
	}
	if slices.Contains(cfg.Checks, "redis") && s.Redis != nil {
		h.checks = append(h.checks, dependencyCheck{
			name:     "redis",
			pinger:   pingFunc(func(ctx context.Context) error { return s.Redis.Ping(ctx).Err() }),
			optional: true,
		})
	}

	return h
}

// CheckHealth returns 200 when every required dependency answers and 503
// otherwise, with a per-dependency breakdown.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		checkStart := time.Now()
		err := check.pinger.Ping(ctx)
		elapsed := time.Since(checkStart)
		cancel()

		if err != nil {
			checks[check.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": elapsed.String(),
				"error":         err.Error(),
			}
			if !check.optional {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       check.name,
				"operation":        "health_check",
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": elapsed.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": elapsed.String(),
		}

		logger.Debug().
			Str("check", check.name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
		h.server.LoggerService.GetApplication().RecordCustomEvent("HealthCheckError", attrs)
	}
}
