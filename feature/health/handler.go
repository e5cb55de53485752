package health

import (
	"catalog-aggregator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the health routes.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/v1/health", h.HandleHealth)
	app.Get("/v1/ready", h.HandleReady)
}

// HandleHealth reports liveness.
// @Summary Health
// @Tags health
// @Produce json
// @Success 200 {object} Liveness
// @Router /v1/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(h.service.Live())
}

// HandleReady reports readiness.
// @Summary Readiness
// @Description Pings the database and verifies the catalog schema.
// @Tags health
// @Produce json
// @Success 200 {object} Readiness
// @Failure 503 {object} Readiness
// @Router /v1/ready [get]
func (h *Handler) HandleReady(c *fiber.Ctx) error {
	r := h.service.Ready(c.UserContext())
	if !r.Ready() {
		logger.WithRayID(h.logger, c).Warn("Readiness check failed", zap.String("error", r.Error))
		return c.Status(fiber.StatusServiceUnavailable).JSON(r)
	}
	return c.JSON(r)
}
