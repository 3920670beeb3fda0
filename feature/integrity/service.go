package integrity

import (
	"context"

	"contract-manager/core/storage"
	"contract-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Report combines the results of every check. A failed check carries its
// error instead of a result.
type Report struct {
	Storage      *StorageReport       `json:"storage"`
	Schema       *checks.SchemaReport `json:"schema,omitempty"`
	StorageError string               `json:"storage_error,omitempty"`
	SchemaError  string               `json:"schema_error,omitempty"`
}

// Healthy reports whether every check ran and found nothing wrong.
func (r *Report) Healthy() bool {
	return r.StorageError == "" && r.SchemaError == "" &&
		r.Storage != nil && len(r.Storage.Missing) == 0 &&
		r.Schema != nil && r.Schema.Matched
}

// StorageReport lists the missing bucket folders.
type StorageReport struct {
	Bucket  string   `json:"bucket"`
	Missing []string `json:"missing"`
}

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	models []any
}

// NewService creates a new integrity service checking the tables of models.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, models ...any) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		models: models,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the database tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.models...)
}

// CheckAll runs the storage and schema checks concurrently.
func (s *Service) CheckAll(ctx context.Context) *Report {
	report := &Report{}
	var g errgroup.Group

	g.Go(func() error {
		missing, err := s.CheckStructure(ctx)
		if err != nil {
			s.logger.Warn("Storage check failed", zap.Error(err))
			report.StorageError = err.Error()
			return nil
		}
		report.Storage = &StorageReport{Bucket: s.bucket, Missing: missing}
		return nil
	})

	g.Go(func() error {
		schema, err := s.CheckSchema()
		if err != nil {
			s.logger.Warn("Schema check failed", zap.Error(err))
			report.SchemaError = err.Error()
			return nil
		}
		report.Schema = schema
		return nil
	})

	// Each goroutine writes its own fields and never returns an error.
	_ = g.Wait()
	return report
}
