// Package loader provides the plugin-like feature loading system.
//
// Each feature (clients, contracts, agents, integrity, backup) implements the
// Feature interface and registers its own routes.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry: Register adds a feature, LoadAll loads the
// enabled ones in registration order.
package loader
