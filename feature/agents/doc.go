// Package agents manages the agent profiles clients and contracts are
// assigned to.
//
// Profiles carry an active flag. New profiles start active and only an
// admin can flip the flag, never on their own account. Sending the
// identity provider's invitation stays outside this service; the admin
// passes the invited user's id when inserting the profile.
//
// # HTTP Endpoints
//
//   - GET /agents : Lists profiles ordered by surname (admin only).
//   - GET /agents/:id : Returns one profile (admins, or the agent itself).
//   - POST /agents : Inserts a profile (admin only).
//   - PUT /agents/:id : Updates nome, cognome, email and role (admin only).
//   - POST /agents/:id/toggle : Enables or disables a profile (admin only).
package agents
