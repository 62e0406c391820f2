package handlers

import (
	"context"
	"sort"
	"time"

	"daswos/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	checks map[string]HealthCheck
}

func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks}
}

// Check runs every probe and answers 503 if any of them fails.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "ok"
	code := fiber.StatusOK
	services := fiber.Map{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			services[name] = "unavailable"
			status = "degraded"
			code = fiber.StatusServiceUnavailable
			continue
		}
		services[name] = "connected"
	}

	return utils.Respond(c, code, fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}
