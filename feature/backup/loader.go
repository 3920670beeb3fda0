package backup

import (
	"contract-manager/core/middleware/actor"
	"contract-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new backup feature. It is disabled without a database.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Feature {
	svc := NewService(db, client, bucket, cfg, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc),
		enabled: db != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "backup"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes behind the admin check.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app.Group("/backup", actor.RequirePrivileged()))
	return nil
}

// Service exposes the backup service to the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
