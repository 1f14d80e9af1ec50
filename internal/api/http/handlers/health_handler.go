package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is a dependency the readiness probe can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependency is one readiness check. A failing optional dependency is
// reported as degraded but does not take the service out of rotation.
type Dependency struct {
	Name     string
	Pinger   Pinger
	Optional bool
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	deps        []Dependency
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, deps []Dependency) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, deps: deps}
}

// Root answers GET / with a plain banner.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString(h.serviceName + " is running")
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports service readiness by checking dependencies.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	depStatus := fiber.Map{}
	ready, degraded := true, false
	for _, dep := range h.deps {
		err := dep.Pinger.Ping(ctx)
		switch {
		case err == nil:
			depStatus[dep.Name] = "ok"
		case dep.Optional:
			depStatus[dep.Name] = "degraded: " + err.Error()
			degraded = true
		default:
			depStatus[dep.Name] = err.Error()
			ready = false
		}
	}

	if ready {
		status := "ready"
		if degraded {
			status = "degraded"
		}
		return c.JSON(fiber.Map{
			"status":       status,
			"dependencies": depStatus,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "one or more dependencies unavailable",
			"details": depStatus,
		},
	})
}
