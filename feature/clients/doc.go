// Package clients manages customer companies and their reference contacts.
//
// A save writes the client row first and then replaces its whole contact set
// (delete every stored contact, insert the submitted list). The two phases
// are not atomic: a failure after the client row is written is reported as a
// partial save, and submitting the same form again repairs it.
//
// Before anything is written the form is sanitized (cap keeps digits only,
// provincia and sdi are cut and uppercased, the IBAN is normalized) and then
// validated: ragione sociale is required, partita IVA and IBAN must pass
// their checksums, and an admin must pick the owning agent. Agents always
// own what they save.
//
// What happens when the old contacts cannot be deleted is configured with
// CLIENTS_ON_CONTACT_DELETE_FAILURE: "warn" logs and still inserts, "abort"
// stops before inserting.
//
// # HTTP Endpoints
//
//   - GET /clients : Lists clients (filters: ragione_sociale, partita_iva, sdi, localita, provincia, agente_id).
//   - GET /clients/suggest?q= : Name suggestions.
//   - GET /clients/:id : Client with contacts.
//   - POST /clients : Creates a client.
//   - PUT /clients/:id : Updates a client and replaces its contacts.
package clients
