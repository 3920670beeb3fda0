package contracts

import (
	"fmt"
	"strings"

	"contract-manager/core/utils"
	"contract-manager/feature/contracts/models"
)

// Filter narrows a contract list. Empty fields match everything.
type Filter struct {
	AgentID        string `query:"agente_id"`
	RagioneSociale string `query:"ragione_sociale"`
	Tipo           string `query:"tipo"`
	Stato          string `query:"stato"`
	// DataEsitoDa and DataEsitoA bound the outcome day, both inclusive.
	DataEsitoDa string `query:"data_esito_da"`
	DataEsitoA  string `query:"data_esito_a"`
}

type dateRange struct {
	from, to *models.Date
}

func (f Filter) dateRange() (dateRange, error) {
	var r dateRange
	for _, b := range []struct {
		raw string
		dst **models.Date
	}{{f.DataEsitoDa, &r.from}, {f.DataEsitoA, &r.to}} {
		if strings.TrimSpace(b.raw) == "" {
			continue
		}
		d, err := models.ParseDate(strings.TrimSpace(b.raw))
		if err != nil {
			return r, fmt.Errorf("%w: %w", ErrInvalidFilter, err)
		}
		*b.dst = &d
	}
	return r, nil
}

func (r dateRange) contains(d *models.Date) bool {
	if r.from == nil && r.to == nil {
		return true
	}
	if d == nil || d.IsZero() {
		return false
	}
	if r.from != nil && d.Before(*r.from) {
		return false
	}
	if r.to != nil && d.After(*r.to) {
		return false
	}
	return true
}

// Apply returns the contracts that match, keeping their order.
func (f Filter) Apply(list []models.Contract) ([]models.Contract, error) {
	r, err := f.dateRange()
	if err != nil {
		return nil, err
	}

	out := make([]models.Contract, 0, len(list))
	for _, c := range list {
		name := ""
		if c.Client != nil {
			name = c.Client.RagioneSociale
		}
		switch {
		case f.AgentID != "" && c.AgentID != f.AgentID:
		case !utils.ContainsFold(name, strings.TrimSpace(f.RagioneSociale)):
		case f.Tipo != "" && !strings.EqualFold(string(c.Tipo), f.Tipo):
		case f.Stato != "" && string(c.Stato) != f.Stato:
		case !r.contains(c.DataEsito):
		default:
			out = append(out, c)
		}
	}
	return out, nil
}
