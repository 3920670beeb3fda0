package validation

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Handler handles HTTP requests for identifier checks.
type Handler struct{}

// NewHandler creates a new HTTP handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/:kind/:value", h.HandleCheck)
}

// HandleCheck validates a single identifier.
// @Summary Validate Identifier
// @Description Checks a partita IVA (tax-id) or an IBAN. The answer is always 200 for known kinds; see the valid field.
// @Tags validation
// @Produce json
// @Param kind path string true "Identifier kind" Enums(tax-id, iban)
// @Param value path string true "Value to check"
// @Success 200 {object} Result
// @Failure 404 {object} map[string]string "Unknown kind"
// @Router /validate/{kind}/{value} [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	kind, err := ParseKind(c.Params("kind"))
	if err == nil {
		var res Result
		if res, err = Check(kind, c.Params("value")); err == nil {
			return c.JSON(res)
		}
	}
	if errors.Is(err, ErrUnknownKind) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
