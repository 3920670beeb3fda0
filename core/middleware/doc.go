// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting every endpoint except the docs.
//   - rayid: a unique request id (RayID) per request, stored in the context
//     and echoed in the response headers for tracing.
//   - actor: resolves the acting agent and role from the gateway headers;
//     the clients and contracts features need it to decide record ownership.
//
// They are registered globally in cmd/start.go, in that order.
package middleware
