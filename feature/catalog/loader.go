package catalog

import (
	"catalog-aggregator/core/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *QueryService
	handler *Handler
}

// NewFeature creates the catalog read feature. It is disabled without a database.
func NewFeature(db *gorm.DB, v *validator.Validator, logger *zap.Logger) *Feature {
	if db == nil {
		return &Feature{}
	}
	svc := NewQueryService(db, v, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
