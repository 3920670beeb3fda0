package models

import (
	"time"

	agents "contract-manager/feature/agents/models"
	clients "contract-manager/feature/clients/models"
)

// Type is the contract product line.
type Type string

const (
	TypeA1 Type = "A1"
	TypeA2 Type = "A2"
)

// Status is the lifecycle state of a contract.
type Status string

const (
	StatusDraft     Status = "Bozza"
	StatusPending   Status = "In attesa firma"
	StatusSigned    Status = "Firmato"
	StatusLost      Status = "Perso"
	StatusCancelled Status = "Annullato"
)

var transitions = map[Status][]Status{
	StatusDraft:   {StatusPending, StatusCancelled},
	StatusPending: {StatusSigned, StatusLost, StatusCancelled},
}

// CanTransition reports whether a contract may move from s to next.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// IsOutcome reports whether s records how the negotiation ended.
func (s Status) IsOutcome() bool {
	return s == StatusSigned || s == StatusLost
}

// Contract is an agreement proposed to a client by an agent.
type Contract struct {
	ID                     string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	ClientID               string    `gorm:"column:cliente_id;type:varchar(36);index" json:"cliente_id" validate:"required"`
	AgentID                string    `gorm:"column:agente_id;type:varchar(36);index" json:"agente_id" validate:"required"`
	Tipo                   Type      `gorm:"column:tipo;type:varchar(2)" json:"tipo" validate:"oneof=A1 A2"`
	Stato                  Status    `gorm:"column:stato;type:varchar(20)" json:"stato"`
	SegnalatoreNomeCognome string    `gorm:"column:segnalatore_nome_cognome;type:varchar(255)" json:"segnalatore_nome_cognome"`
	RefNome                string    `gorm:"column:ref_nome;type:varchar(100)" json:"ref_nome"`
	RefCognome             string    `gorm:"column:ref_cognome;type:varchar(100)" json:"ref_cognome"`
	RefEmail               string    `gorm:"column:ref_email;type:varchar(255)" json:"ref_email"`
	RefTelefono            string    `gorm:"column:ref_telefono;type:varchar(30)" json:"ref_telefono"`
	RefCellulare           string    `gorm:"column:ref_cellulare;type:varchar(30)" json:"ref_cellulare"`
	IBAN                   string    `gorm:"column:iban;type:varchar(34)" json:"iban" validate:"iban"`
	Banca                  string    `gorm:"column:banca;type:varchar(255)" json:"banca"`
	IntestatarioConto      string    `gorm:"column:intestatario_conto;type:varchar(255)" json:"intestatario_conto"`
	DataFirma              *Date     `gorm:"column:data_firma;type:date" json:"data_firma"`
	LuogoFirma             string    `gorm:"column:luogo_firma;type:varchar(100)" json:"luogo_firma"`
	DataEsito              *Date     `gorm:"column:data_esito;type:date" json:"data_esito"`
	CreatedAt              time.Time `gorm:"column:created_at;type:datetime;autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime" json:"updated_at"`

	// Client and Agent are joined for display and never written back.
	Client *clients.Client `gorm:"foreignKey:ClientID;references:ID" json:"clienti,omitempty" validate:"-"`
	Agent  *agents.Profile `gorm:"foreignKey:AgentID;references:ID" json:"profiles,omitempty" validate:"-"`
}

func (Contract) TableName() string {
	return "contratti"
}

// WritableColumns lists the columns a form update may overwrite. The state
// and outcome date only change through transitions.
var WritableColumns = []string{
	"cliente_id", "agente_id", "tipo", "segnalatore_nome_cognome",
	"ref_nome", "ref_cognome", "ref_email", "ref_telefono", "ref_cellulare",
	"iban", "banca", "intestatario_conto", "data_firma", "luogo_firma",
	"updated_at",
}

// StripProjections drops the joined fields.
func (c *Contract) StripProjections() {
	c.Client = nil
	c.Agent = nil
}
