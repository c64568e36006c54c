package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/ruangkarya/ruangkarya-api/internal/config"
	"github.com/ruangkarya/ruangkarya-api/internal/utils"
)

// HealthResponse is the liveness payload served at /api/v1/health. Deploy
// probes only look at the status field; the rest helps humans tell
// environments apart.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Service     string    `json:"service"`
	Environment string    `json:"environment"`
}

// HealthCheck returns the liveness handler for the RuangKarya API.
func HealthCheck(cfg config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload := HealthResponse{
			Status:      "ok",
			Timestamp:   time.Now().UTC(),
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
