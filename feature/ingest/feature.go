package ingest

import (
	"swim-admin/core/storage"
	"swim-admin/feature/event"
	"swim-admin/feature/ingest/validate"
	"swim-admin/feature/roster"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature wires the ingestion endpoints into the application.
type Feature struct {
	handler *Handler
}

// NewFeature creates the ingestion feature. store may be nil when upload
// archiving is disabled.
func NewFeature(db *gorm.DB, events *event.Service, snapshots *roster.SnapshotProvider, store storage.Client, bucket string, cfg validate.Config, logger *zap.Logger) *Feature {
	service := NewService(db, events, snapshots, store, bucket, cfg, logger)
	return &Feature{handler: NewHandler(service)}
}

// Name implements loader.Feature.
func (f *Feature) Name() string { return "convert" }

// IsEnabled implements loader.Feature.
func (f *Feature) IsEnabled() bool { return true }

// Load implements loader.Feature.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
