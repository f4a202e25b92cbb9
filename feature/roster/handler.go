package roster

import (
	"strconv"

	"swim-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for roster lookups.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the roster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/athletes")
	group.Get("/search", h.HandleSearch)
}

// HandleSearch finds roster athletes by name fragment.
// @Summary Search Athletes
// @Description Search the athlete roster by name fragment for manual-entry roster building.
// @Tags roster
// @Produce json
// @Param q query string true "Name fragment"
// @Param limit query int false "Maximum results (default 20)"
// @Success 200 {array} models.Athlete "Athletes"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /athletes/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "q query parameter is required"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	athletes, err := h.service.Search(c.Context(), query, limit)
	if err != nil {
		l.Error("Athlete search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(athletes)
}
