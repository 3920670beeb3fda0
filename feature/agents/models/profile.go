package models

import "time"

// Profile is an agent account. The id matches the identity provider's user
// id when the account was invited there first.
type Profile struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id" validate:"max=36"`
	Nome      string    `gorm:"column:nome;type:varchar(100)" json:"nome" validate:"required,max=100"`
	Cognome   string    `gorm:"column:cognome;type:varchar(100)" json:"cognome" validate:"required,max=100"`
	Email     string    `gorm:"column:email;type:varchar(255)" json:"email" validate:"required,email,max=255"`
	Role      string    `gorm:"column:role;type:varchar(20);default:agente" json:"role" validate:"oneof=admin agente"`
	Attivo    bool      `gorm:"column:attivo;default:true" json:"attivo"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime;autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// DisplayName renders the profile as "Cognome Nome".
func (p Profile) DisplayName() string {
	switch {
	case p.Cognome == "":
		return p.Nome
	case p.Nome == "":
		return p.Cognome
	}
	return p.Cognome + " " + p.Nome
}
