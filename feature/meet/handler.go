package meet

import (
	"errors"

	"swim-admin/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for meet administration.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the meet routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/meets")
	group.Get("/", h.HandleList)
	group.Post("/create", h.HandleCreate)
	group.Put("/:id/alias", h.HandleSetAlias)
	group.Put("/:id/category", h.HandleSetCategory)
	group.Delete("/:id", h.HandleDelete)
}

// HandleList lists all meets.
// @Summary List Meets
// @Description List all meets, newest first.
// @Tags meets
// @Produce json
// @Success 200 {array} models.Meet "Meets"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /meets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	meets, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Meet listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(meets)
}

// HandleCreate creates a meet ahead of ingestion.
// @Summary Create Meet
// @Description Create a meet by hand. City is optional.
// @Tags meets
// @Accept json
// @Produce json
// @Param meet body CreateInput true "Meet fields"
// @Success 201 {object} models.Meet "Created meet"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /meets/create [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	meet, err := h.service.Create(c.Context(), in)
	if err != nil {
		l.Warn("Meet creation failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(meet)
}

type aliasRequest struct {
	Alias *string `json:"alias"`
}

// HandleSetAlias assigns or clears a meet's alias.
// @Summary Set Meet Alias
// @Description Assign a unique short alias to a meet, or clear it with null.
// @Tags meets
// @Accept json
// @Produce json
// @Param id path int true "Meet identifier"
// @Param alias body aliasRequest true "Alias value"
// @Success 200 {object} models.Meet "Updated meet"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Alias taken"
// @Router /meets/{id}/alias [put]
func (h *Handler) HandleSetAlias(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a positive integer"})
	}

	var req aliasRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	meet, err := h.service.SetAlias(c.Context(), uint(id), req.Alias)
	if err != nil {
		switch {
		case errors.Is(err, ErrMeetNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrAliasTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		default:
			l.Error("Alias update failed", zap.Int("meet_id", id), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(meet)
}

// HandleSetCategory updates a meet's participant type and scope.
// @Summary Set Meet Category
// @Description Update participant type and scope, either as two fields or as a legacy delimited category string.
// @Tags meets
// @Accept json
// @Produce json
// @Param id path int true "Meet identifier"
// @Param category body CategoryInput true "Category fields"
// @Success 200 {object} models.Meet "Updated meet"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /meets/{id}/category [put]
func (h *Handler) HandleSetCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a positive integer"})
	}

	var in CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	meet, err := h.service.SetCategory(c.Context(), uint(id), in)
	if err != nil {
		if errors.Is(err, ErrMeetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Warn("Category update failed", zap.Int("meet_id", id), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(meet)
}

// HandleDelete removes a meet with its results.
// @Summary Delete Meet
// @Description Delete a meet together with all its results and relay splits.
// @Tags meets
// @Produce json
// @Param id path int true "Meet identifier"
// @Success 200 {object} map[string]string "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /meets/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "id must be a positive integer"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, ErrMeetNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Meet deletion failed", zap.Int("meet_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "deleted"})
}
