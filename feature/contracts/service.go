package contracts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contract-manager/core/reconcile"
	"contract-manager/core/validators"
	clients "contract-manager/feature/clients/models"
	"contract-manager/feature/contracts/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned for missing contracts and for contracts the actor may not see.
	ErrNotFound = errors.New("contract not found")
	// ErrForbidden is returned when an agent edits a contract owned by someone else.
	ErrForbidden = errors.New("contract belongs to another agent")
	// ErrInvalidTransition is returned when the lifecycle does not allow a state change.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrInvalidFilter is returned for malformed list filters.
	ErrInvalidFilter = errors.New("invalid filter")
)

// Service manages contracts.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
	now    func() time.Time
}

// NewService creates a new contracts service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger, now: time.Now}
}

func sanitize(c *models.Contract) {
	c.Tipo = models.Type(strings.ToUpper(strings.TrimSpace(string(c.Tipo))))
	c.IBAN = validators.NormalizeIBAN(c.IBAN)
	c.RefEmail = strings.ToLower(strings.TrimSpace(c.RefEmail))
	c.LuogoFirma = strings.TrimSpace(c.LuogoFirma)
	if c.DataFirma != nil && c.DataFirma.IsZero() {
		c.DataFirma = nil
	}
}

// Save creates or updates a contract. Agents always own what they save, new
// contracts start as drafts and an update never changes the state.
func (s *Service) Save(ctx context.Context, actor reconcile.Actor, c models.Contract) (*models.Contract, error) {
	c.AgentID = actor.ResolveOwner(c.AgentID)
	c.StripProjections()
	sanitize(&c)
	if err := validators.Struct(&c); err != nil {
		return nil, err
	}

	if err := s.checkClient(ctx, actor, c.ClientID); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.Stato = models.StatusDraft
		c.DataEsito = nil
		if err := db.Omit("Client", "Agent").Create(&c).Error; err != nil {
			return nil, fmt.Errorf("failed to create contract: %w", err)
		}
		s.logger.Info("Contract created", zap.String("id", c.ID), zap.String("agent", c.AgentID))
		return &c, nil
	}

	existing, err := s.load(ctx, actor, c.ID)
	if err != nil {
		return nil, err
	}
	c.Stato = existing.Stato
	c.DataEsito = existing.DataEsito
	c.CreatedAt = existing.CreatedAt

	if err := db.Model(&c).Select(models.WritableColumns).Updates(&c).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract %s: %w", c.ID, err)
	}
	return &c, nil
}

// Transition moves a contract to another lifecycle state. Entering an
// outcome state stamps today's date as outcome day unless one is set.
func (s *Service) Transition(ctx context.Context, actor reconcile.Actor, id string, to models.Status) (*models.Contract, error) {
	c, err := s.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if c.Stato.IsTerminal() {
		return nil, fmt.Errorf("%w: contract is already closed as %s", ErrInvalidTransition, c.Stato)
	}
	if !c.Stato.CanTransition(to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, c.Stato, to)
	}

	from := c.Stato
	c.Stato = to
	if to.IsOutcome() && (c.DataEsito == nil || c.DataEsito.IsZero()) {
		today := models.NewDate(s.now())
		c.DataEsito = &today
	}

	err = s.db.WithContext(ctx).Model(c).Select("stato", "data_esito", "updated_at").Updates(c).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update contract %s: %w", id, err)
	}

	s.logger.Info("Contract state changed",
		zap.String("id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	return c, nil
}

// Get returns a contract with its client and agent.
func (s *Service) Get(ctx context.Context, actor reconcile.Actor, id string) (*models.Contract, error) {
	c, err := s.load(ctx, actor, id)
	if errors.Is(err, ErrForbidden) {
		return nil, ErrNotFound
	}
	return c, err
}

// List returns the contracts the actor may see that match f, newest first.
func (s *Service) List(ctx context.Context, actor reconcile.Actor, f Filter) ([]models.Contract, error) {
	q := s.db.WithContext(ctx).Preload("Client").Preload("Agent").Order("created_at DESC")
	if !actor.IsPrivileged() {
		q = q.Where("agente_id = ?", actor.ID)
	}

	var list []models.Contract
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return f.Apply(list)
}

func (s *Service) load(ctx context.Context, actor reconcile.Actor, id string) (*models.Contract, error) {
	var c models.Contract
	err := s.db.WithContext(ctx).Preload("Client").Preload("Agent").Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contract %s: %w", id, err)
	}
	if !actor.CanAccess(c.AgentID) {
		return nil, ErrForbidden
	}
	return &c, nil
}

// checkClient requires the client to exist and be visible to the actor.
func (s *Service) checkClient(ctx context.Context, actor reconcile.Actor, clientID string) error {
	var client clients.Client
	err := s.db.WithContext(ctx).Select("id", "agente_id").Where("id = ?", clientID).First(&client).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !actor.CanAccess(client.AgentID)) {
		verr := &validators.ValidationError{}
		verr.Add("cliente_id", "unknown client")
		return verr
	}
	if err != nil {
		return fmt.Errorf("failed to load client %s: %w", clientID, err)
	}
	return nil
}
