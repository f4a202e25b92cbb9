package results

import (
	"swim-admin/feature/event"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the results endpoints into the application.
type Feature struct {
	handler *Handler
}

// NewFeature creates the results feature.
func NewFeature(db *gorm.DB, events *event.Service, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(NewService(db, events, logger))}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "results" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
