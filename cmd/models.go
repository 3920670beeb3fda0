package cmd

import (
	agents "contract-manager/feature/agents/models"
	clients "contract-manager/feature/clients/models"
	contracts "contract-manager/feature/contracts/models"
)

// schemaModels lists every table the service owns, parents first.
func schemaModels() []any {
	return []any{
		&agents.Profile{},
		&clients.Client{},
		&clients.Contact{},
		&contracts.Contract{},
	}
}
