package event

import (
	"github.com/gofiber/fiber/v2"
)

// Feature wires the event endpoints into the application.
type Feature struct {
	handler *Handler
}

// NewFeature creates the event feature over a shared service; the
// ingestion pipeline and results endpoints use the same one.
func NewFeature(service *Service) *Feature {
	return &Feature{handler: NewHandler(service)}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "events" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
