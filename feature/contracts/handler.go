package contracts

import (
	"errors"

	"contract-manager/core/logger"
	"contract-manager/core/middleware/actor"
	"contract-manager/core/validators"
	"contract-manager/feature/contracts/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for contracts.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// TransitionRequest is the body of a state change.
type TransitionRequest struct {
	Stato models.Status `json:"stato"`
}

// RegisterRoutes registers the contract routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/contracts")
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.HandleCreate)
	group.Put("/:id", h.HandleUpdate)
	group.Post("/:id/transition", h.HandleTransition)
}

// HandleList lists the contracts visible to the actor.
// @Summary List Contracts
// @Description Lists contracts newest first. Agents only see their own contracts.
// @Tags contracts
// @Produce json
// @Param agente_id query string false "Owner agent id"
// @Param ragione_sociale query string false "Client name contains"
// @Param tipo query string false "A1 or A2"
// @Param stato query string false "Lifecycle state"
// @Param data_esito_da query string false "Outcome day from (YYYY-MM-DD)"
// @Param data_esito_a query string false "Outcome day to (YYYY-MM-DD)"
// @Success 200 {array} models.Contract
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /contracts [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	var f Filter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.service.List(c.Context(), a, f)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(list)
}

// HandleGet returns a contract.
// @Summary Get Contract
// @Tags contracts
// @Produce json
// @Param id path string true "Contract ID"
// @Success 200 {object} models.Contract
// @Failure 404 {object} map[string]string "Not Found"
// @Router /contracts/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	contract, err := h.service.Get(c.Context(), a, c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(contract)
}

// HandleCreate creates a draft contract.
// @Summary Create Contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param contract body models.Contract true "Contract"
// @Success 201 {object} models.Contract
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /contracts [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var body models.Contract
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	body.ID = ""
	return h.save(c, body, fiber.StatusCreated)
}

// HandleUpdate overwrites the editable fields of a contract.
// @Summary Update Contract
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param contract body models.Contract true "Contract"
// @Success 200 {object} models.Contract
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Router /contracts/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var body models.Contract
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	body.ID = c.Params("id")
	return h.save(c, body, fiber.StatusOK)
}

// HandleTransition changes the lifecycle state of a contract.
// @Summary Change Contract State
// @Description Bozza moves to In attesa firma or Annullato; In attesa firma moves to Firmato, Perso or Annullato.
// @Tags contracts
// @Accept json
// @Produce json
// @Param id path string true "Contract ID"
// @Param request body TransitionRequest true "Target state"
// @Success 200 {object} models.Contract
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Router /contracts/{id}/transition [post]
func (h *Handler) HandleTransition(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	var req TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	contract, err := h.service.Transition(c.Context(), a, c.Params("id"), req.Stato)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(contract)
}

func (h *Handler) save(c *fiber.Ctx, body models.Contract, status int) error {
	a, _ := actor.FromCtx(c)

	contract, err := h.service.Save(c.Context(), a, body)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(status).JSON(contract)
}

func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var verr *validators.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  validators.ErrValidation.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidFilter):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.ForRequest(h.logger, c).Error("Contract request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
