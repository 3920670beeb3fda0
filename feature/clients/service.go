package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"contract-manager/core/reconcile"
	"contract-manager/core/utils"
	"contract-manager/core/validators"
	"contract-manager/feature/clients/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	capLength       = 5
	provinciaLength = 2
	sdiLength       = 20

	// DefaultSuggestLimit is used when Suggest gets no positive limit.
	DefaultSuggestLimit = 5
	// MaxSuggestLimit caps the suggestions returned at once.
	MaxSuggestLimit = 20
	// MinSuggestQuery is the shortest query that produces suggestions.
	MinSuggestQuery = 2
)

// ErrNotFound is returned for missing clients and for clients the actor may not see.
var ErrNotFound = errors.New("client not found")

// SaveInput is a client form with its full contact list.
type SaveInput struct {
	Client   models.Client
	Contacts []models.Contact
}

// SaveResult is the outcome of a successful save.
type SaveResult struct {
	Client   models.Client   `json:"cliente"`
	State    reconcile.State `json:"state"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Suggestion is a client match for search-as-you-type fields.
type Suggestion struct {
	ID             string `json:"id"`
	RagioneSociale string `json:"ragione_sociale"`
	PartitaIVA     string `json:"partita_iva"`
}

// Service manages clients and their contacts.
type Service struct {
	store  *Store
	engine *reconcile.Engine[*models.Client, models.Contact]
	logger *zap.Logger
}

// NewService creates a new clients service.
func NewService(db *gorm.DB, policy reconcile.Policy, logger *zap.Logger) *Service {
	store := NewStore(db)
	engine := reconcile.NewEngine[*models.Client, models.Contact](store, policy, logger,
		reconcile.WithValidation[*models.Client, models.Contact](Validate))
	return &Service{
		store:  store,
		engine: engine,
		logger: logger,
	}
}

// Policy returns the contact delete failure policy in use.
func (s *Service) Policy() reconcile.Policy {
	return s.engine.Policy()
}

// Sanitize cuts the client fields to what the columns accept.
func Sanitize(c *models.Client) {
	c.RagioneSociale = utils.CollapseSpaces(c.RagioneSociale)
	c.Cap = utils.Truncate(utils.DigitsOnly(c.Cap), capLength)
	c.Provincia = utils.UpperTruncate(c.Provincia, provinciaLength)
	c.SDI = utils.UpperTruncate(c.SDI, sdiLength)
	c.PartitaIVA = strings.TrimSpace(c.PartitaIVA)
	c.IBAN = validators.NormalizeIBAN(c.IBAN)
	c.PEC = strings.ToLower(strings.TrimSpace(c.PEC))
	if c.TipologiaIntestatario == "" {
		c.TipologiaIntestatario = models.DefaultHolderType
	}
}

// Validate checks the tags of a sanitized client whose owner is already
// resolved. Contacts carry no rules.
func Validate(c *models.Client, _ []models.Contact) error {
	return validators.Struct(c)
}

// Save sanitizes, validates and stores the client, then replaces its
// contacts with in.Contacts. Updating requires the client to exist. An agent
// saving a client always becomes its owner, whoever owned it before.
func (s *Service) Save(ctx context.Context, actor reconcile.Actor, in SaveInput) (*SaveResult, error) {
	client := in.Client
	Sanitize(&client)
	client.CreatedAt = time.Time{}
	client.UpdatedAt = time.Time{}

	if client.ID != "" {
		existing, err := s.store.Find(ctx, client.ID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load client %s: %w", client.ID, err)
		}
		client.CreatedAt = existing.CreatedAt
	}

	res, err := s.engine.Save(ctx, actor, &client, in.Contacts)
	if err != nil {
		return nil, err
	}

	saved := *res.Parent
	saved.Contacts = res.Children
	return &SaveResult{Client: saved, State: res.State, Warnings: res.Warnings}, nil
}

// Get returns a client with its contacts.
func (s *Service) Get(ctx context.Context, actor reconcile.Actor, id string) (*models.Client, error) {
	client, err := s.store.Find(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load client %s: %w", id, err)
	}
	if !actor.CanAccess(client.AgentID) {
		return nil, ErrNotFound
	}
	return client, nil
}

// List returns the clients the actor may see that match f, ordered by name.
func (s *Service) List(ctx context.Context, actor reconcile.Actor, f Filter) ([]models.Client, error) {
	owner := ""
	if !actor.IsPrivileged() {
		owner = actor.ID
	}

	all, err := s.store.All(ctx, owner)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Suggest returns up to limit clients whose name contains query.
func (s *Service) Suggest(ctx context.Context, actor reconcile.Actor, query string, limit int) ([]Suggestion, error) {
	query = strings.TrimSpace(query)
	if len([]rune(query)) < MinSuggestQuery {
		return []Suggestion{}, nil
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	limit = min(limit, MaxSuggestLimit)

	matches, err := s.List(ctx, actor, Filter{RagioneSociale: query})
	if err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, min(limit, len(matches)))
	for _, c := range matches[:min(limit, len(matches))] {
		out = append(out, Suggestion{ID: c.ID, RagioneSociale: c.RagioneSociale, PartitaIVA: c.PartitaIVA})
	}
	return out, nil
}
