// Package contracts manages the contracts agents propose to clients.
//
// A contract is created as a draft (Bozza) and then follows a fixed
// lifecycle:
//
//	Bozza           -> In attesa firma | Annullato
//	In attesa firma -> Firmato | Perso | Annullato
//
// Firmato, Perso and Annullato are terminal. Entering Firmato or Perso
// stamps the outcome day (data_esito) unless it is already set. Form updates
// never change the state.
//
// # HTTP Endpoints
//
//   - GET /contracts : Lists contracts (filters: agente_id, ragione_sociale, tipo, stato, data_esito_da, data_esito_a).
//   - GET /contracts/:id : Single contract.
//   - POST /contracts : Creates a draft.
//   - PUT /contracts/:id : Updates the editable fields.
//   - POST /contracts/:id/transition : Changes the state.
package contracts
