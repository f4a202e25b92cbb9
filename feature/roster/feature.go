package roster

import (
	"github.com/gofiber/fiber/v2"
)

// Feature wires the roster endpoints into the application.
type Feature struct {
	handler *Handler
}

// NewFeature creates the roster feature over a shared service; the
// ingestion pipeline builds its matcher snapshots from the same one.
func NewFeature(service *Service) *Feature {
	return &Feature{handler: NewHandler(service)}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "roster" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
