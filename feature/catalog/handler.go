package catalog

import (
	"errors"
	"fmt"
	"strconv"

	"catalog-aggregator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the catalog read API.
type Handler struct {
	service *QueryService
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *QueryService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the v1 and v2 product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	v1 := app.Group("/v1/products")
	v1.Get("/", h.HandleListV1)
	v1.Get("/cursor", h.HandleCursorV1)
	v1.Get("/changes/recent", h.HandleRecentV1)
	v1.Get("/:id", h.HandleGetV1)

	v2 := app.Group("/v2/products")
	v2.Get("/", h.HandleListV2)
	v2.Get("/cursor", h.HandleCursorV2)
	v2.Get("/changes/recent", h.HandleRecentV2)
	v2.Get("/:id", h.HandleGetV2)
}

// fail maps service errors to status codes.
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidQuery), errors.Is(err, ErrInvalidCursor):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Catalog query failed", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func (h *Handler) offsetQuery(c *fiber.Ctx) (OffsetQuery, error) {
	q := DefaultOffsetQuery()
	if err := c.QueryParser(&q); err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return q, nil
}

func (h *Handler) cursorQuery(c *fiber.Ctx) (CursorQuery, error) {
	q := DefaultCursorQuery()
	if err := c.QueryParser(&q); err != nil {
		return q, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	return q, nil
}

func (h *Handler) hours(c *fiber.Ctx) (int, error) {
	raw := c.Query("hours")
	if raw == "" {
		return DefaultHours, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: hours must be an integer", ErrInvalidQuery)
	}
	return n, nil
}

func (h *Handler) page(c *fiber.Ctx) (*Page, error) {
	q, err := h.offsetQuery(c)
	if err != nil {
		return nil, err
	}
	return h.service.FindPage(c.UserContext(), q)
}

func (h *Handler) cursorPage(c *fiber.Ctx) (*CursorPage, error) {
	q, err := h.cursorQuery(c)
	if err != nil {
		return nil, err
	}
	return h.service.FindCursor(c.UserContext(), q)
}

func (h *Handler) recentPage(c *fiber.Ctx) (*Page, error) {
	hours, err := h.hours(c)
	if err != nil {
		return nil, err
	}
	q, err := h.offsetQuery(c)
	if err != nil {
		return nil, err
	}
	return h.service.FindRecentChanges(c.UserContext(), hours, q)
}

// HandleListV1 lists products with offset pagination.
// @Summary List Products
// @Description Returns one page of products. Each product embeds up to 10 most recent price changes.
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param sortBy query string false "Sort field" Enums(name, price, lastUpdated, createdAt) default(lastUpdated)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} PageV1
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v1/products [get]
func (h *Handler) HandleListV1(c *fiber.Ctx) error {
	p, err := h.page(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(pageV1(p))
}

// HandleCursorV1 lists products with cursor pagination.
// @Summary List Products By Cursor
// @Description Returns the products following the cursor (the ID of the last product of the previous page).
// @Tags products
// @Produce json
// @Param cursor query string false "Product ID to continue after"
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param sortBy query string false "Sort field" Enums(name, price, lastUpdated, createdAt) default(lastUpdated)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} CursorPageV1
// @Failure 400 {object} map[string]string "Invalid query or cursor"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v1/products/cursor [get]
func (h *Handler) HandleCursorV1(c *fiber.Ctx) error {
	p, err := h.cursorPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cursorPageV1(p))
}

// HandleRecentV1 lists products updated recently.
// @Summary Recent Changes
// @Description Returns products whose provider timestamp is within the last N hours, with price changes from the same window.
// @Tags products
// @Produce json
// @Param hours query int false "Window in hours" default(24)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Success 200 {object} PageV1
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v1/products/changes/recent [get]
func (h *Handler) HandleRecentV1(c *fiber.Ctx) error {
	p, err := h.recentPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(pageV1(p))
}

// HandleGetV1 returns one product.
// @Summary Get Product
// @Description Returns a product with its full price history, newest first.
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductV1
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v1/products/{id} [get]
func (h *Handler) HandleGetV1(c *fiber.Ctx) error {
	p, err := h.service.FindOne(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(toV1(*p, false))
}

// HandleListV2 lists products with offset pagination and history statistics.
// @Summary List Products (v2)
// @Tags products
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param sortBy query string false "Sort field" Enums(name, price, lastUpdated, createdAt) default(lastUpdated)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} PageV2
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v2/products [get]
func (h *Handler) HandleListV2(c *fiber.Ctx) error {
	p, err := h.page(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(pageV2(p))
}

// HandleCursorV2 lists products by cursor with history statistics.
// @Summary List Products By Cursor (v2)
// @Tags products
// @Produce json
// @Param cursor query string false "Product ID to continue after"
// @Param limit query int false "Items per page (max 100)" default(20)
// @Param sortBy query string false "Sort field" Enums(name, price, lastUpdated, createdAt) default(lastUpdated)
// @Param sortOrder query string false "Sort order" Enums(asc, desc) default(desc)
// @Success 200 {object} CursorPageV2
// @Failure 400 {object} map[string]string "Invalid query or cursor"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v2/products/cursor [get]
func (h *Handler) HandleCursorV2(c *fiber.Ctx) error {
	p, err := h.cursorPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(cursorPageV2(p))
}

// HandleRecentV2 lists recently updated products with history statistics.
// @Summary Recent Changes (v2)
// @Tags products
// @Produce json
// @Param hours query int false "Window in hours" default(24)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page (max 100)" default(20)
// @Success 200 {object} PageV2
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v2/products/changes/recent [get]
func (h *Handler) HandleRecentV2(c *fiber.Ctx) error {
	p, err := h.recentPage(c)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(pageV2(p))
}

// HandleGetV2 returns one product with history statistics.
// @Summary Get Product (v2)
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} ProductV2
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /v2/products/{id} [get]
func (h *Handler) HandleGetV2(c *fiber.Ctx) error {
	p, err := h.service.FindOne(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(toV2(*p))
}
