package clients

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"contract-manager/core/database"
	"contract-manager/core/reconcile"
	"contract-manager/core/validators"
	agents "contract-manager/feature/agents/models"
	"contract-manager/feature/clients/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	validTaxID = "00743110157"
	validIBAN  = "IT60X0542811101000000123456"
)

var (
	admin  = reconcile.Actor{ID: "adm", Role: reconcile.RoleAdmin}
	agentA = reconcile.Actor{ID: "agent-a", Role: reconcile.RoleAgent}
	agentB = reconcile.Actor{ID: "agent-b", Role: reconcile.RoleAgent}
)

func setupDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &agents.Profile{}, &models.Client{}, &models.Contact{}))
	require.NoError(t, db.Create(&[]agents.Profile{
		{ID: "adm", Nome: "Sara", Cognome: "Rossi", Role: "admin"},
		{ID: "agent-a", Nome: "Anna", Cognome: "Bianchi", Role: "agente"},
		{ID: "agent-b", Nome: "Luca", Cognome: "Verdi", Role: "agente"},
	}).Error)
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}
	return gormDB, mock
}

func newClient(name string) models.Client {
	return models.Client{
		RagioneSociale: name,
		Localita:       "Milano",
		Provincia:      "mi",
		Cap:            "20 121",
		PartitaIVA:     validTaxID,
		IBAN:           "it60 x054 2811 1010 0000 0123 456",
	}
}

func contacts(names ...string) []models.Contact {
	out := make([]models.Contact, len(names))
	for i, n := range names {
		out[i] = models.Contact{Nome: n, Cognome: "Ref", Email: " " + n + "@Example.com "}
	}
	return out
}

func storedContacts(t *testing.T, db *gorm.DB, clientID string) []models.Contact {
	var rows []models.Contact
	require.NoError(t, db.Where("cliente_id = ?", clientID).Order("nome").Find(&rows).Error)
	return rows
}

func TestSave_CreatePath(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())

	res, err := svc.Save(context.Background(), agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Mario")})
	require.NoError(t, err)
	require.NotEmpty(t, res.Client.ID)
	assert.Equal(t, reconcile.StateSucceeded, res.State)

	got, err := svc.Get(context.Background(), agentA, res.Client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme Srl", got.RagioneSociale)
	assert.Equal(t, "MI", got.Provincia)
	assert.Equal(t, "20121", got.Cap)
	assert.Equal(t, validIBAN, got.IBAN)
	assert.Equal(t, models.DefaultHolderType, got.TipologiaIntestatario)
	assert.Equal(t, "agent-a", got.AgentID)
	require.NotNil(t, got.Agent)
	assert.Equal(t, "Bianchi", got.Agent.Cognome)

	require.Len(t, got.Contacts, 1)
	assert.Equal(t, res.Client.ID, got.Contacts[0].ClientID)
	assert.Equal(t, "agent-a", got.Contacts[0].AgentID)
	assert.Equal(t, "mario@example.com", got.Contacts[0].Email)
}

func TestSave_ReturnsStoredTimestamps(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	created, err := svc.Save(ctx, agentA, SaveInput{Client: newClient("Acme Srl")})
	require.NoError(t, err)
	assert.False(t, created.Client.CreatedAt.IsZero())
	assert.False(t, created.Client.UpdatedAt.IsZero())

	var stored models.Client
	require.NoError(t, db.First(&stored, "id = ?", created.Client.ID).Error)

	update := created.Client
	update.RagioneSociale = "Acme Group Srl"
	update.CreatedAt = time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Save(ctx, agentA, SaveInput{Client: update})
	require.NoError(t, err)
	assert.Equal(t, "Acme Group Srl", updated.Client.RagioneSociale)
	assert.True(t, stored.CreatedAt.Equal(updated.Client.CreatedAt))
	assert.False(t, updated.Client.UpdatedAt.Before(stored.UpdatedAt))

	require.NoError(t, db.First(&stored, "id = ?", created.Client.ID).Error)
	assert.NotEqual(t, 2001, stored.CreatedAt.Year())
}

func TestSave_FullChildReplace(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Save(ctx, agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna", "Bruno", "Carla")})
	require.NoError(t, err)
	require.Len(t, storedContacts(t, db, first.Client.ID), 3)

	update := first.Client
	_, err = svc.Save(ctx, agentA, SaveInput{Client: update, Contacts: contacts("Dario", "Elena")})
	require.NoError(t, err)

	rows := storedContacts(t, db, first.Client.ID)
	require.Len(t, rows, 2)
	assert.Equal(t, "Dario", rows[0].Nome)
	assert.Equal(t, "Elena", rows[1].Nome)

	var clientCount int64
	require.NoError(t, db.Model(&models.Client{}).Count(&clientCount).Error)
	assert.Equal(t, int64(1), clientCount)
}

func TestSave_ResubmitDoesNotDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Save(ctx, agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna", "Bruno")})
	require.NoError(t, err)

	// Ids coming back from a previous read are ignored.
	loaded, err := svc.Get(ctx, agentA, first.Client.ID)
	require.NoError(t, err)
	_, err = svc.Save(ctx, agentA, SaveInput{Client: *loaded, Contacts: loaded.Contacts})
	require.NoError(t, err)

	assert.Len(t, storedContacts(t, db, first.Client.ID), 2)
}

func TestSave_EmptyChildList(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	first, err := svc.Save(ctx, agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna", "Bruno")})
	require.NoError(t, err)

	_, err = svc.Save(ctx, agentA, SaveInput{Client: first.Client})
	require.NoError(t, err)

	assert.Empty(t, storedContacts(t, db, first.Client.ID))
}

func TestSave_Ownership(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	t.Run("Agent cannot reassign", func(t *testing.T) {
		c := newClient("Acme Srl")
		c.AgentID = "agent-b"
		res, err := svc.Save(ctx, agentA, SaveInput{Client: c, Contacts: contacts("Anna")})
		require.NoError(t, err)
		assert.Equal(t, "agent-a", res.Client.AgentID)

		var stored models.Client
		require.NoError(t, db.First(&stored, "id = ?", res.Client.ID).Error)
		assert.Equal(t, "agent-a", stored.AgentID)
		assert.Equal(t, "agent-a", storedContacts(t, db, res.Client.ID)[0].AgentID)
	})

	t.Run("Admin assigns agent", func(t *testing.T) {
		c := newClient("Beta Spa")
		c.AgentID = "agent-b"
		res, err := svc.Save(ctx, admin, SaveInput{Client: c})
		require.NoError(t, err)
		assert.Equal(t, "agent-b", res.Client.AgentID)
	})

	t.Run("Admin must pick an agent", func(t *testing.T) {
		_, err := svc.Save(ctx, admin, SaveInput{Client: newClient("Gamma Spa")})
		var verr *validators.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "agente_id")
	})

	t.Run("Agent saving a foreign client takes it over", func(t *testing.T) {
		c := newClient("Delta Srl")
		res, err := svc.Save(ctx, agentB, SaveInput{Client: c, Contacts: contacts("Bea")})
		require.NoError(t, err)
		require.Equal(t, "agent-b", res.Client.AgentID)

		taken, err := svc.Save(ctx, agentA, SaveInput{Client: res.Client, Contacts: contacts("Bea")})
		require.NoError(t, err)
		assert.Equal(t, res.Client.ID, taken.Client.ID)
		assert.Equal(t, "agent-a", taken.Client.AgentID)

		var stored models.Client
		require.NoError(t, db.First(&stored, "id = ?", res.Client.ID).Error)
		assert.Equal(t, "agent-a", stored.AgentID)
		assert.Equal(t, "agent-a", storedContacts(t, db, res.Client.ID)[0].AgentID)

		_, err = svc.Get(ctx, agentB, res.Client.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Update of unknown id", func(t *testing.T) {
		c := newClient("Epsilon Srl")
		c.ID = "does-not-exist"
		_, err := svc.Save(ctx, admin, SaveInput{Client: c})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSave_Validation(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())

	c := newClient("")
	c.PartitaIVA = "12345678904"
	c.IBAN = "IT60X0542811101000000123457"

	_, err := svc.Save(context.Background(), agentA, SaveInput{Client: c, Contacts: contacts("Anna")})
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.Equal(t, reconcile.StateFailed, reconcile.StateOf(err))

	var verr *validators.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"ragione_sociale": "required",
		"partita_iva":     "invalid tax identifier",
		"iban":            "invalid IBAN",
	}, verr.Fields)
	assert.Equal(t, "validation failed: iban: invalid IBAN, partita_iva: invalid tax identifier, ragione_sociale: required", verr.Error())

	var count int64
	require.NoError(t, db.Model(&models.Client{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSave_ParentWriteFailureTouchesNoChildren(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti`")).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Save(context.Background(), agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna")})
	require.Error(t, err)
	assert.ErrorIs(t, err, reconcile.ErrParentWrite)
	assert.Equal(t, reconcile.StateFailed, reconcile.StateOf(err))

	// Any DELETE or INSERT on clienti_referenti would be an unexpected query.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ContactInsertFailureIsPartial(t *testing.T) {
	db, mock := setupMockDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti`")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `clienti_referenti`")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti_referenti`")).WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	_, err := svc.Save(context.Background(), agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna", "Bruno")})
	require.Error(t, err)
	assert.True(t, reconcile.IsPartial(err))
	assert.ErrorIs(t, err, reconcile.ErrChildInsert)

	var serr *reconcile.SaveError
	require.ErrorAs(t, err, &serr)
	assert.NotEmpty(t, serr.ParentID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_ContactDeleteFailurePolicy(t *testing.T) {
	expectParent := func(mock sqlmock.Sqlmock) {
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti`")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM `clienti_referenti`")).WillReturnError(errors.New("lock wait timeout"))
		mock.ExpectRollback()
	}

	t.Run("Warn keeps inserting", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
		expectParent(mock)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `clienti_referenti`")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		res, err := svc.Save(context.Background(), agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna")})
		require.NoError(t, err)
		assert.Len(t, res.Warnings, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Abort stops before inserting", func(t *testing.T) {
		db, mock := setupMockDB(t)
		svc := NewService(db, reconcile.PolicyAbort, zap.NewNop())
		expectParent(mock)

		_, err := svc.Save(context.Background(), agentA, SaveInput{Client: newClient("Acme Srl"), Contacts: contacts("Anna")})
		assert.ErrorIs(t, err, reconcile.ErrChildDelete)
		assert.True(t, reconcile.IsPartial(err))
		assert.Equal(t, reconcile.PolicyAbort, svc.Policy())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGet_Visibility(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	res, err := svc.Save(ctx, agentA, SaveInput{Client: newClient("Acme Srl")})
	require.NoError(t, err)

	_, err = svc.Get(ctx, agentB, res.Client.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(ctx, admin, res.Client.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, admin, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListAndSuggest(t *testing.T) {
	db := setupDB(t)
	svc := NewService(db, reconcile.PolicyWarn, zap.NewNop())
	ctx := context.Background()

	for _, in := range []struct {
		actor reconcile.Actor
		name  string
	}{
		{agentA, "Zeta Impianti"},
		{agentA, "Alfa Costruzioni"},
		{agentB, "Beta Costruzioni"},
	} {
		_, err := svc.Save(ctx, in.actor, SaveInput{Client: newClient(in.name)})
		require.NoError(t, err)
	}

	t.Run("Agent sees own clients ordered", func(t *testing.T) {
		list, err := svc.List(ctx, agentA, Filter{})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Alfa Costruzioni", list[0].RagioneSociale)
		assert.Equal(t, "Zeta Impianti", list[1].RagioneSociale)
	})

	t.Run("Admin filters", func(t *testing.T) {
		list, err := svc.List(ctx, admin, Filter{RagioneSociale: "costruz"})
		require.NoError(t, err)
		assert.Len(t, list, 2)

		list, err = svc.List(ctx, admin, Filter{RagioneSociale: "costruz", AgentID: "agent-b"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Beta Costruzioni", list[0].RagioneSociale)
	})

	t.Run("Suggest", func(t *testing.T) {
		out, err := svc.Suggest(ctx, admin, "co", 1)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Alfa Costruzioni", out[0].RagioneSociale)

		out, err = svc.Suggest(ctx, agentB, "costr", 0)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, "Beta Costruzioni", out[0].RagioneSociale)

		out, err = svc.Suggest(ctx, admin, "a", 5)
		require.NoError(t, err)
		assert.Empty(t, out)
	})
}
