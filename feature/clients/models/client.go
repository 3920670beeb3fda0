package models

import (
	"strings"
	"time"

	agents "contract-manager/feature/agents/models"
)

// DefaultHolderType is the account holder type of a new client.
const DefaultHolderType = "Partita IVA"

// Client is a customer company with its registry, billing and bank details.
type Client struct {
	ID                    string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	RagioneSociale        string    `gorm:"column:ragione_sociale;type:varchar(255);index" json:"ragione_sociale" validate:"required"`
	Via                   string    `gorm:"column:via;type:varchar(255)" json:"via"`
	Civico                string    `gorm:"column:civico;type:varchar(20)" json:"civico"`
	Localita              string    `gorm:"column:localita;type:varchar(100)" json:"localita"`
	Provincia             string    `gorm:"column:provincia;type:varchar(2)" json:"provincia"`
	Cap                   string    `gorm:"column:cap;type:varchar(5)" json:"cap"`
	RappresentanteNome    string    `gorm:"column:rappresentante_nome;type:varchar(100)" json:"rappresentante_nome"`
	RappresentanteCognome string    `gorm:"column:rappresentante_cognome;type:varchar(100)" json:"rappresentante_cognome"`
	CodiceAltuofianco     string    `gorm:"column:codice_altuofianco;type:varchar(50)" json:"codice_altuofianco"`
	IBAN                  string    `gorm:"column:iban;type:varchar(34)" json:"iban" validate:"iban"`
	Banca                 string    `gorm:"column:banca;type:varchar(255)" json:"banca"`
	IntestatarioConto     string    `gorm:"column:intestatario_conto;type:varchar(255)" json:"intestatario_conto"`
	TipologiaIntestatario string    `gorm:"column:tipologia_intestatario;type:varchar(50)" json:"tipologia_intestatario"`
	DebitoreNomeCognome   string    `gorm:"column:debitore_nome_cognome;type:varchar(255)" json:"debitore_nome_cognome"`
	DebitoreCF            string    `gorm:"column:debitore_cf;type:varchar(16)" json:"debitore_cf"`
	PartitaIVA            string    `gorm:"column:partita_iva;type:varchar(11)" json:"partita_iva" validate:"piva"`
	SDI                   string    `gorm:"column:sdi;type:varchar(20)" json:"sdi"`
	PEC                   string    `gorm:"column:pec;type:varchar(255)" json:"pec"`
	AgentID               string    `gorm:"column:agente_id;type:varchar(36);index" json:"agente_id" validate:"required"`
	CreatedAt             time.Time `gorm:"column:created_at;type:datetime;autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime" json:"updated_at"`

	// Agent is the joined owner profile, display only.
	Agent *agents.Profile `gorm:"foreignKey:AgentID;references:ID" json:"profiles,omitempty" validate:"-"`
	// Contacts is loaded on reads; writes go through the contact reconciliation.
	Contacts []Contact `gorm:"foreignKey:ClientID;references:ID" json:"referenti,omitempty" validate:"-"`
}

func (Client) TableName() string {
	return "clienti"
}

// WritableColumns lists the columns an update overwrites. created_at is kept.
var WritableColumns = []string{
	"ragione_sociale", "via", "civico", "localita", "provincia", "cap",
	"rappresentante_nome", "rappresentante_cognome", "codice_altuofianco",
	"iban", "banca", "intestatario_conto", "tipologia_intestatario",
	"debitore_nome_cognome", "debitore_cf", "partita_iva", "sdi", "pec",
	"agente_id", "updated_at",
}

func (c *Client) RecordID() string {
	return c.ID
}

func (c *Client) OwnerID() string {
	return c.AgentID
}

func (c *Client) SetOwner(agentID string) {
	c.AgentID = agentID
}

// StripProjections drops the joined fields so they are never written back.
func (c *Client) StripProjections() {
	c.Agent = nil
	c.Contacts = nil
}

// Contact is a reference person at a client. The whole set is replaced on
// every client save, so ids are never stable across saves.
type Contact struct {
	ID                string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id,omitempty"`
	ClientID          string    `gorm:"column:cliente_id;type:varchar(36);index" json:"cliente_id"`
	AgentID           string    `gorm:"column:agente_id;type:varchar(36)" json:"agente_id"`
	Nome              string    `gorm:"column:nome;type:varchar(100)" json:"nome"`
	Cognome           string    `gorm:"column:cognome;type:varchar(100)" json:"cognome"`
	Ruolo             string    `gorm:"column:ruolo;type:varchar(100)" json:"ruolo"`
	Email             string    `gorm:"column:email;type:varchar(255)" json:"email"`
	TelefonoFisso     string    `gorm:"column:telefono_fisso;type:varchar(30)" json:"telefono_fisso"`
	TelefonoCellulare string    `gorm:"column:telefono_cellulare;type:varchar(30)" json:"telefono_cellulare"`
	CreatedAt         time.Time `gorm:"column:created_at;type:datetime;autoCreateTime" json:"created_at"`
}

func (Contact) TableName() string {
	return "clienti_referenti"
}

// Normalize trims the contact and clears the fields the store assigns.
func (c *Contact) Normalize() {
	c.ID = ""
	c.CreatedAt = time.Time{}
	c.Nome = strings.TrimSpace(c.Nome)
	c.Cognome = strings.TrimSpace(c.Cognome)
	c.Ruolo = strings.TrimSpace(c.Ruolo)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.TelefonoFisso = strings.TrimSpace(c.TelefonoFisso)
	c.TelefonoCellulare = strings.TrimSpace(c.TelefonoCellulare)
}
