package agents

import (
	"errors"

	"contract-manager/core/logger"
	"contract-manager/core/middleware/actor"
	"contract-manager/core/validators"
	"contract-manager/feature/agents/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for agents.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the agent routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/agents")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", actor.RequirePrivileged(), h.HandleCreate)
	group.Put("/:id", actor.RequirePrivileged(), h.HandleUpdate)
	group.Post("/:id/toggle", actor.RequirePrivileged(), h.HandleToggle)
}

// HandleList returns the agents an admin can assign records to.
// @Summary List Agents
// @Description Lists every agent profile ordered by surname. Admin only.
// @Tags agents
// @Produce json
// @Success 200 {array} models.Profile
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /agents [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	profiles, err := h.service.List(c.Context(), a)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(profiles)
}

// HandleGet returns one profile. Agents may only read their own.
// @Summary Get Agent
// @Tags agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /agents/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	p, err := h.service.Get(c.Context(), a, c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

// HandleCreate inserts a profile.
// @Summary Create Agent
// @Description Inserts an active profile. The id may carry the identity provider's user id. Admin only.
// @Tags agents
// @Accept json
// @Produce json
// @Param agent body models.Profile true "Profile"
// @Success 201 {object} models.Profile
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /agents [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	var body models.Profile
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	p, err := h.service.Create(c.Context(), a, body)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// HandleUpdate overwrites name, email and role of a profile.
// @Summary Update Agent
// @Description Overwrites nome, cognome, email and role. Admin only.
// @Tags agents
// @Accept json
// @Produce json
// @Param id path string true "Agent ID"
// @Param agent body models.Profile true "Profile"
// @Success 200 {object} models.Profile
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /agents/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	var body models.Profile
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	p, err := h.service.Update(c.Context(), a, c.Params("id"), body)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

// HandleToggle enables or disables a profile.
// @Summary Toggle Agent
// @Description Flips the active flag of a profile. Admins cannot toggle themselves.
// @Tags agents
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} models.Profile
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Own account"
// @Router /agents/{id}/toggle [post]
func (h *Handler) HandleToggle(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	p, err := h.service.Toggle(c.Context(), a, c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(p)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var verr *validators.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  validators.ErrValidation.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrEmailTaken), errors.Is(err, ErrSelfToggle):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	}
	logger.ForRequest(h.logger, c).Error("Agent request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
