// Package server holds the HTTP server configuration.
//
// The main application entry point (cmd/start.go) handles the server startup;
// this package only defines the settings: listen port, API key, read timeout
// and deployment environment.
package server
