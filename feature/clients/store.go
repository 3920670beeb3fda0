package clients

import (
	"context"
	"fmt"
	"time"

	"contract-manager/feature/clients/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists clients and their contacts with gorm.
type Store struct {
	db *gorm.DB
}

// NewStore creates a new gorm-backed client store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// UpsertParent inserts the client, assigning an id when it has none, or
// overwrites the writable columns of the existing row.
func (s *Store) UpsertParent(ctx context.Context, client *models.Client) (*models.Client, error) {
	row := *client
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	err := s.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(models.WritableColumns),
		}).
		Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}
	return &row, nil
}

// DeleteChildren removes every contact of the client.
func (s *Store) DeleteChildren(ctx context.Context, clientID string) error {
	err := s.db.WithContext(ctx).
		Where("cliente_id = ?", clientID).
		Delete(&models.Contact{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete contacts of %s: %w", clientID, err)
	}
	return nil
}

// InsertChildren writes the contacts as new rows in a single batch.
func (s *Store) InsertChildren(ctx context.Context, contacts []models.Contact, clientID, agentID string) error {
	now := time.Now()
	rows := make([]models.Contact, len(contacts))
	for i, c := range contacts {
		c.ID = uuid.NewString()
		c.ClientID = clientID
		c.AgentID = agentID
		c.CreatedAt = now
		rows[i] = c
	}

	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert contacts of %s: %w", clientID, err)
	}
	return nil
}

// Find loads a client with its owner and contacts.
func (s *Store) Find(ctx context.Context, id string) (*models.Client, error) {
	var client models.Client
	err := s.db.WithContext(ctx).
		Preload("Agent").
		Preload("Contacts", func(db *gorm.DB) *gorm.DB {
			return db.Order("cognome").Order("nome")
		}).
		Where("id = ?", id).
		First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// All loads the clients ordered by name, restricted to ownerID when not empty.
func (s *Store) All(ctx context.Context, ownerID string) ([]models.Client, error) {
	q := s.db.WithContext(ctx).Preload("Agent").Order("ragione_sociale")
	if ownerID != "" {
		q = q.Where("agente_id = ?", ownerID)
	}

	var list []models.Client
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return list, nil
}
