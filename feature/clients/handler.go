package clients

import (
	"errors"

	"contract-manager/core/logger"
	"contract-manager/core/middleware/actor"
	"contract-manager/core/reconcile"
	"contract-manager/core/validators"
	"contract-manager/feature/clients/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for clients.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the client routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/clients")
	group.Get("/", h.HandleList)
	group.Get("/suggest", h.HandleSuggest)
	group.Get("/:id", h.HandleGet)
	group.Post("/", h.HandleCreate)
	group.Put("/:id", h.HandleUpdate)
}

// HandleList lists the clients visible to the actor.
// @Summary List Clients
// @Description Lists clients ordered by ragione sociale. Agents only see their own clients.
// @Tags clients
// @Produce json
// @Param ragione_sociale query string false "Name contains"
// @Param partita_iva query string false "Tax id contains"
// @Param sdi query string false "SDI code contains"
// @Param localita query string false "Town contains"
// @Param provincia query string false "Province contains"
// @Param agente_id query string false "Owner agent id"
// @Success 200 {array} models.Client
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /clients [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.ForRequest(h.logger, c)
	a, _ := actor.FromCtx(c)

	var f Filter
	if err := c.QueryParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	list, err := h.service.List(c.Context(), a, f)
	if err != nil {
		l.Error("Failed to list clients", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleSuggest returns name suggestions.
// @Summary Suggest Clients
// @Description Returns clients whose name contains q, for search-as-you-type fields.
// @Tags clients
// @Produce json
// @Param q query string true "Query (at least 2 characters)"
// @Param limit query int false "Maximum suggestions"
// @Success 200 {array} Suggestion
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /clients/suggest [get]
func (h *Handler) HandleSuggest(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	out, err := h.service.Suggest(c.Context(), a, c.Query("q"), c.QueryInt("limit", DefaultSuggestLimit))
	if err != nil {
		logger.ForRequest(h.logger, c).Error("Failed to suggest clients", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(out)
}

// HandleGet returns a client with its contacts.
// @Summary Get Client
// @Tags clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /clients/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	a, _ := actor.FromCtx(c)

	client, err := h.service.Get(c.Context(), a, c.Params("id"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.ForRequest(h.logger, c).Error("Failed to load client", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(client)
}

// HandleCreate creates a client with its contacts.
// @Summary Create Client
// @Description Creates a client. The "referenti" array becomes the full contact list.
// @Tags clients
// @Accept json
// @Produce json
// @Param client body models.Client true "Client with referenti"
// @Success 201 {object} SaveResult
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 502 {object} map[string]string "Client write failed"
// @Failure 500 {object} map[string]interface{} "Contacts partially saved"
// @Router /clients [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var body models.Client
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	body.ID = ""
	return h.save(c, body, fiber.StatusCreated)
}

// HandleUpdate overwrites a client and replaces its contacts.
// @Summary Update Client
// @Description Overwrites a client. The "referenti" array replaces every stored contact. An agent saving a client becomes its owner.
// @Tags clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param client body models.Client true "Client with referenti"
// @Success 200 {object} SaveResult
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]interface{} "Validation failed"
// @Failure 502 {object} map[string]string "Client write failed"
// @Failure 500 {object} map[string]interface{} "Contacts partially saved"
// @Router /clients/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var body models.Client
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	body.ID = c.Params("id")
	return h.save(c, body, fiber.StatusOK)
}

func (h *Handler) save(c *fiber.Ctx, body models.Client, status int) error {
	l := logger.ForRequest(h.logger, c)
	a, _ := actor.FromCtx(c)

	res, err := h.service.Save(c.Context(), a, SaveInput{Client: body, Contacts: body.Contacts})
	if err != nil {
		return writeSaveError(c, l, err)
	}
	return c.Status(status).JSON(res)
}

// writeSaveError maps a save failure to its HTTP status.
func writeSaveError(c *fiber.Ctx, l *zap.Logger, err error) error {
	var verr *validators.ValidationError
	var serr *reconcile.SaveError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  validators.ErrValidation.Error(),
			"fields": verr.Fields,
		})
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case reconcile.IsPartial(err):
		l.Error("Client saved with inconsistent contacts", zap.Error(err))
		resp := fiber.Map{"error": err.Error(), "partial": true}
		if errors.As(err, &serr) {
			resp["id"] = serr.ParentID
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	case errors.Is(err, reconcile.ErrParentWrite):
		l.Error("Client write failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Client save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
