package backup

import (
	"contract-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for backups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the backup routes on an admin-only router.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/", h.HandleExport)
	app.Get("/", h.HandleList)
}

// HandleExport writes a new snapshot.
// @Summary Export Snapshot
// @Description Writes a JSON snapshot of profiles, clients with contacts and contracts to the backup bucket. Admin only.
// @Tags backup
// @Produce json
// @Success 201 {object} Result
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.ForRequest(h.service.logger, c)

	res, err := h.service.Export(c.Context())
	if err != nil {
		l.Error("Export failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists the stored snapshots.
// @Summary List Snapshots
// @Tags backup
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /backup [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	keys, err := h.service.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(keys)
}
