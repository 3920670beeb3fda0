package actor

import (
	"strings"

	"contract-manager/core/logger"
	"contract-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
)

const (
	// HeaderID carries the authenticated agent id, set by the gateway.
	HeaderID = "X-Actor-ID"
	// HeaderRole carries the agent role (admin, agente).
	HeaderRole = "X-Actor-Role"

	localsKey = "actor"
)

// New returns a middleware that resolves the acting agent from trusted
// gateway headers and rejects requests without one.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := strings.TrimSpace(c.Get(HeaderID))
		if id == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing actor",
			})
		}

		role := reconcile.Role(strings.ToLower(strings.TrimSpace(c.Get(HeaderRole))))
		if role != reconcile.RoleAdmin {
			role = reconcile.RoleAgent
		}

		c.Locals(localsKey, reconcile.Actor{ID: id, Role: role})
		c.Locals(logger.ActorIDKey, id)
		return c.Next()
	}
}

// FromCtx returns the actor attached by New.
func FromCtx(c *fiber.Ctx) (reconcile.Actor, bool) {
	a, ok := c.Locals(localsKey).(reconcile.Actor)
	return a, ok
}

// RequirePrivileged rejects actors that are not administrators.
func RequirePrivileged() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, ok := FromCtx(c)
		if !ok || !a.IsPrivileged() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "admin role required",
			})
		}
		return c.Next()
	}
}
