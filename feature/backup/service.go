package backup

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"contract-manager/core/storage"
	agents "contract-manager/feature/agents/models"
	clients "contract-manager/feature/clients/models"
	contracts "contract-manager/feature/contracts/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// KeyLayout names snapshots so that lexical order is chronological. The
// fixed-width milliseconds keep two exports within one second apart.
const KeyLayout = "20060102T150405.000Z"

// Snapshot is the JSON document written to the bucket.
type Snapshot struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Profiles    []agents.Profile     `json:"profiles"`
	Clients     []clients.Client     `json:"clienti"`
	Contracts   []contracts.Contract `json:"contratti"`
}

// Result describes a written snapshot.
type Result struct {
	Key       string    `json:"key"`
	Size      int64     `json:"size"`
	Profiles  int       `json:"profiles"`
	Clients   int       `json:"clienti"`
	Contracts int       `json:"contratti"`
	CreatedAt time.Time `json:"created_at"`
	Pruned    []string  `json:"pruned,omitempty"`
}

// Service exports database snapshots to object storage.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
	group  singleflight.Group
	now    func() time.Time
}

// NewService creates a new backup service.
func NewService(db *gorm.DB, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Service {
	if cfg.Prefix == "" {
		cfg.Prefix = "backups"
	}
	return &Service{
		db:     db,
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ObjectKey returns the bucket key of a snapshot taken at t.
func (s *Service) ObjectKey(t time.Time) string {
	return fmt.Sprintf("%s/%s.json", strings.TrimSuffix(s.cfg.Prefix, "/"), t.UTC().Format(KeyLayout))
}

// Export writes a snapshot of every profile, client (with contacts) and
// contract. Concurrent calls share a single export.
func (s *Service) Export(ctx context.Context) (*Result, error) {
	// The shared export must not die with the first caller's request.
	ctx = context.WithoutCancel(ctx)
	v, err, shared := s.group.Do("export", func() (any, error) {
		return s.export(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined running export")
	}
	return v.(*Result), nil
}

func (s *Service) export(ctx context.Context) (*Result, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	snap := Snapshot{GeneratedAt: s.now().UTC()}
	db := s.db.WithContext(ctx)
	if err := db.Order("cognome").Find(&snap.Profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	if err := db.Preload("Contacts").Order("ragione_sociale").Find(&snap.Clients).Error; err != nil {
		return nil, fmt.Errorf("failed to read clients: %w", err)
	}
	if err := db.Order("created_at").Find(&snap.Contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}

	key := s.ObjectKey(snap.GeneratedAt)
	info, err := storage.PutJSON(ctx, s.client, s.bucket, key, snap)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Key:       key,
		Size:      info.Size,
		Profiles:  len(snap.Profiles),
		Clients:   len(snap.Clients),
		Contracts: len(snap.Contracts),
		CreatedAt: snap.GeneratedAt,
	}
	s.logger.Info("Snapshot exported",
		zap.String("key", key),
		zap.Int("clients", res.Clients),
		zap.Int("contracts", res.Contracts),
	)

	pruned, err := s.prune(ctx)
	if err != nil {
		// The snapshot is already safe; stale ones are retried next time.
		s.logger.Warn("Failed to prune old snapshots", zap.Error(err))
	}
	res.Pruned = pruned
	return res, nil
}

// List returns the snapshot keys, newest first.
func (s *Service) List(ctx context.Context) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, strings.TrimSuffix(s.cfg.Prefix, "/")+"/")
	if err != nil {
		return nil, err
	}

	snapshots := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, ".json") {
			snapshots = append(snapshots, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(snapshots)))
	return snapshots, nil
}

func (s *Service) prune(ctx context.Context) ([]string, error) {
	if s.cfg.Keep <= 0 {
		return nil, nil
	}

	keys, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) <= s.cfg.Keep {
		return nil, nil
	}

	var removed []string
	for _, k := range keys[s.cfg.Keep:] {
		if err := s.client.RemoveObject(ctx, s.bucket, k, minio.RemoveObjectOptions{}); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", k, err)
		}
		removed = append(removed, k)
	}
	return removed, nil
}
