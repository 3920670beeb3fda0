package clients

import (
	"contract-manager/core/reconcile"

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

// NewFeature creates a new clients feature. It is disabled without a database.
func NewFeature(db *gorm.DB, policy reconcile.Policy, logger *zap.Logger) *Feature {
	svc := NewService(db, policy, logger)
	return &Feature{
		service: svc,
		handler: NewHandler(svc, logger),
		enabled: db != nil,
	}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "clients"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the clients service to other features.
func (f *Feature) Service() *Service {
	return f.service
}
