package aggregation

import (
	"errors"
	"time"

	"catalog-aggregator/core/logger"
	"catalog-aggregator/feature/aggregation/normalize"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProviderV1 describes a configured provider and its fetch statistics.
type ProviderV1 struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	URL           string `json:"url"`
	IsActive      bool   `json:"isActive"`
	HasNormalizer bool   `json:"hasNormalizer"`
	ProviderStats
}

// ProviderV2 adds derived health information.
type ProviderV2 struct {
	ProviderV1
	SuccessRate         float64  `json:"successRate"`
	AverageResponseTime *float64 `json:"averageResponseTime,omitempty"`
	HealthStatus        string   `json:"healthStatus"`
}

// RunResponse is the body of a manual aggregation run.
type RunResponse struct {
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Results    []ProviderResult `json:"results"`
}

// Handler serves aggregation and provider routes.
type Handler struct {
	scheduler    *Scheduler
	orchestrator *Orchestrator
	registry     *normalize.Registry
	providers    ProvidersConfig
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(scheduler *Scheduler, orchestrator *Orchestrator, registry *normalize.Registry, providers ProvidersConfig, logger *zap.Logger) *Handler {
	return &Handler{
		scheduler:    scheduler,
		orchestrator: orchestrator,
		registry:     registry,
		providers:    providers,
		logger:       logger,
	}
}

// RegisterRoutes registers the aggregation and provider routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/v1/aggregation/run", h.HandleRun)
	app.Get("/v1/providers", h.HandleProvidersV1)
	app.Get("/v1/providers/urls", h.HandleProviderURLs)
	app.Get("/v2/providers", h.HandleProvidersV2)
}

func (h *Handler) providerV1(ep Endpoint) ProviderV1 {
	return ProviderV1{
		ID:            ep.ID,
		Name:          ep.ID,
		URL:           ep.URL,
		IsActive:      ep.URL != "",
		HasNormalizer: h.registry.Has(ep.ID),
		ProviderStats: h.orchestrator.Status().Get(ep.ID),
	}
}

// HandleRun triggers an aggregation run and waits for it.
// @Summary Run Aggregation
// @Description Fetches, normalizes and reconciles every configured provider. Fails with 409 while another run is in progress.
// @Tags aggregation
// @Produce json
// @Success 200 {object} RunResponse
// @Failure 409 {object} map[string]string "Run in progress"
// @Router /v1/aggregation/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Manual aggregation requested")

	started := time.Now().UTC()
	results, err := h.scheduler.TriggerNow(c.UserContext())
	if errors.Is(err, ErrRunInProgress) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Manual aggregation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(RunResponse{StartedAt: started, FinishedAt: time.Now().UTC(), Results: results})
}

// HandleProvidersV1 lists configured providers.
// @Summary List Providers
// @Tags providers
// @Produce json
// @Success 200 {array} ProviderV1
// @Router /v1/providers [get]
func (h *Handler) HandleProvidersV1(c *fiber.Ctx) error {
	endpoints := h.orchestrator.Endpoints()
	out := make([]ProviderV1, 0, len(endpoints))
	for _, ep := range endpoints {
		out = append(out, h.providerV1(ep))
	}
	return c.JSON(out)
}

// HandleProviderURLs returns the configured provider URLs.
// @Summary Provider URLs
// @Tags providers
// @Produce json
// @Success 200 {object} map[string]string
// @Router /v1/providers/urls [get]
func (h *Handler) HandleProviderURLs(c *fiber.Ctx) error {
	return c.JSON(h.providers.URLs())
}

// HandleProvidersV2 lists providers with success rate and health status.
// @Summary List Providers (v2)
// @Tags providers
// @Produce json
// @Success 200 {array} ProviderV2
// @Router /v2/providers [get]
func (h *Handler) HandleProvidersV2(c *fiber.Ctx) error {
	endpoints := h.orchestrator.Endpoints()
	out := make([]ProviderV2, 0, len(endpoints))
	for _, ep := range endpoints {
		v1 := h.providerV1(ep)
		out = append(out, ProviderV2{
			ProviderV1:          v1,
			SuccessRate:         v1.SuccessRate(),
			AverageResponseTime: v1.AverageResponseTime(),
			HealthStatus:        v1.HealthStatus(),
		})
	}
	return c.JSON(out)
}
