package clients

import (
	"strings"

	"contract-manager/core/utils"
	"contract-manager/feature/clients/models"
)

// Filter narrows a client list. Text fields match case-insensitive
// substrings; AgentID must match exactly. Empty fields match everything.
type Filter struct {
	RagioneSociale string `query:"ragione_sociale"`
	PartitaIVA     string `query:"partita_iva"`
	SDI            string `query:"sdi"`
	Localita       string `query:"localita"`
	Provincia      string `query:"provincia"`
	AgentID        string `query:"agente_id"`
}

// Matches reports whether c passes every field of the filter.
func (f Filter) Matches(c models.Client) bool {
	return utils.ContainsFold(c.RagioneSociale, strings.TrimSpace(f.RagioneSociale)) &&
		utils.ContainsFold(c.PartitaIVA, strings.TrimSpace(f.PartitaIVA)) &&
		utils.ContainsFold(c.SDI, strings.TrimSpace(f.SDI)) &&
		utils.ContainsFold(c.Localita, strings.TrimSpace(f.Localita)) &&
		utils.ContainsFold(c.Provincia, strings.TrimSpace(f.Provincia)) &&
		(f.AgentID == "" || c.AgentID == f.AgentID)
}

// Apply returns the clients that match, keeping their order.
func (f Filter) Apply(list []models.Client) []models.Client {
	out := make([]models.Client, 0, len(list))
	for _, c := range list {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}
