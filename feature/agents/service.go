package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"contract-manager/core/reconcile"
	"contract-manager/core/utils"
	"contract-manager/core/validators"
	"contract-manager/feature/agents/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrForbidden is returned when a non-admin manages agent profiles.
	ErrForbidden = errors.New("admin role required")
	// ErrNotFound is returned when a profile does not exist or the actor may not see it.
	ErrNotFound = errors.New("agent not found")
	// ErrEmailTaken is returned when another profile already uses the email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrSelfToggle is returned when an admin tries to disable their own account.
	ErrSelfToggle = errors.New("cannot change the status of your own account")
)

// editableColumns are the profile columns an update may overwrite.
var editableColumns = []string{"nome", "cognome", "email", "role"}

// Service manages agent profiles.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new agents service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// List returns every profile ordered by surname. Only admins may call it.
func (s *Service) List(ctx context.Context, actor reconcile.Actor) ([]models.Profile, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}

	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Order("cognome").Order("nome").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to list agents: %w", err)
	}
	return profiles, nil
}

// Get returns a single profile. Agents may only read their own.
func (s *Service) Get(ctx context.Context, actor reconcile.Actor, id string) (*models.Profile, error) {
	if !actor.CanAccess(id) {
		return nil, ErrNotFound
	}
	return s.find(ctx, id)
}

// Create inserts a profile. New profiles are always active.
func (s *Service) Create(ctx context.Context, actor reconcile.Actor, p models.Profile) (*models.Profile, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}

	sanitize(&p)
	if err := validators.Struct(&p); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, p.Email, ""); err != nil {
		return nil, err
	}

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Attivo = true
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	s.logger.Info("Agent created",
		zap.String("id", p.ID),
		zap.String("agent", p.DisplayName()),
		zap.String("role", p.Role),
	)
	return &p, nil
}

// Update overwrites name, email and role of a profile. The active flag is
// only changed through Toggle.
func (s *Service) Update(ctx context.Context, actor reconcile.Actor, id string, in models.Profile) (*models.Profile, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}

	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	in.ID = id
	sanitize(&in)
	if err := validators.Struct(&in); err != nil {
		return nil, err
	}
	if err := s.checkEmail(ctx, in.Email, id); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(existing).Select(editableColumns).Updates(&in).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", id, err)
	}

	s.logger.Info("Agent updated", zap.String("id", id), zap.String("agent", in.DisplayName()))
	return s.find(ctx, id)
}

// Toggle flips the active flag of a profile. Admins cannot disable
// themselves.
func (s *Service) Toggle(ctx context.Context, actor reconcile.Actor, id string) (*models.Profile, error) {
	if !actor.IsPrivileged() {
		return nil, ErrForbidden
	}
	if id == actor.ID {
		return nil, ErrSelfToggle
	}

	p, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	next := !p.Attivo
	if err := s.db.WithContext(ctx).Model(p).Update("attivo", next).Error; err != nil {
		return nil, fmt.Errorf("failed to toggle agent %s: %w", id, err)
	}
	p.Attivo = next

	s.logger.Info("Agent status changed",
		zap.String("id", id),
		zap.String("agent", p.DisplayName()),
		zap.Bool("attivo", next),
	)
	return p, nil
}

func (s *Service) find(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load agent %s: %w", id, err)
	}
	return &p, nil
}

// checkEmail fails when a profile other than exceptID uses email.
func (s *Service) checkEmail(ctx context.Context, email, exceptID string) error {
	q := s.db.WithContext(ctx).Model(&models.Profile{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check agent email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func sanitize(p *models.Profile) {
	p.ID = strings.TrimSpace(p.ID)
	p.Nome = utils.CollapseSpaces(p.Nome)
	p.Cognome = utils.CollapseSpaces(p.Cognome)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Role = strings.ToLower(strings.TrimSpace(p.Role))
	if p.Role == "" {
		p.Role = string(reconcile.RoleAgent)
	}
}
