package integrity

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
}

// NewFeature creates a new integrity feature checking the tables of models.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, models ...any) *Feature {
	svc := NewService(client, bucket, logger, db, models...)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes behind the admin check.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app.Group("/integrity", actor.RequirePrivileged()))
	return nil
}

// Service exposes the integrity service to the CLI.
func (f *Feature) Service() *Service {
	return f.service
}
