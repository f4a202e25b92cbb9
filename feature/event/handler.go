package event

import (
	"errors"

	"swim-admin/core/logger"
	"swim-admin/feature/event/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for event reference data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the event routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/events")
	group.Get("/filter", h.HandleFilter)
	group.Get("/check-duplicate", h.HandleCheckDuplicate)
	group.Put("/:id", h.HandleUpdate)
	group.Patch("/:id", h.HandleUpdate)
}

// HandleFilter lists events narrowed by course, gender and relay kind.
// @Summary Filter Events
// @Description List canonical events filtered by course, gender and optionally kind.
// @Tags events
// @Produce json
// @Param course query string false "Course (LCM or SCM)"
// @Param gender query string false "Gender (M, F, X)"
// @Param is_relay query boolean false "Restrict to relay or individual events"
// @Success 200 {array} models.SwimEvent "Events"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /events/filter [get]
func (h *Handler) HandleFilter(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var relay *bool
	if raw := c.Query("is_relay"); raw != "" {
		val := raw == "true" || raw == "1"
		relay = &val
	}

	events, err := h.service.Filter(c.Context(), c.Query("course"), c.Query("gender"), relay)
	if err != nil {
		l.Error("Event filter failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(events)
}

// HandleCheckDuplicate reports whether an event identifier is taken.
// @Summary Check Duplicate Event ID
// @Description Check whether a canonical event identifier already exists.
// @Tags events
// @Produce json
// @Param id query string true "Event identifier"
// @Success 200 {object} map[string]bool "Duplicate flag"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /events/check-duplicate [get]
func (h *Handler) HandleCheckDuplicate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id := c.Query("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id query parameter is required"})
	}

	exists, err := h.service.Exists(c.Context(), id)
	if err != nil {
		l.Error("Duplicate check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"duplicate": exists})
}

// HandleUpdate edits an event's fields, re-deriving its identifier.
// @Summary Update Event
// @Description Update event fields; the identifier is re-derived and duplicate identifiers are rejected.
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event identifier"
// @Param event body models.SwimEvent true "New field values"
// @Success 200 {object} models.SwimEvent "Updated event"
// @Failure 400 {object} map[string]string "Invalid field values"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Duplicate identifier"
// @Router /events/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var fields models.SwimEvent
	if err := c.BodyParser(&fields); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	updated, err := h.service.Update(c.Context(), c.Params("id"), fields)
	if err != nil {
		var unknown *UnknownEventError
		switch {
		case errors.As(err, &unknown):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrInvalidEvent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrDuplicateEvent):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Event update failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(updated)
}
