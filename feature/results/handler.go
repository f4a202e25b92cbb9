package results

import (
	"errors"

	"swim-admin/core/logger"
	"swim-admin/feature/event"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for stored results.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the results routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/meet-results/:meetId", h.HandleForMeet)
	app.Post("/meet-results/update-comp-place", h.HandleUpdateCompPlace)
	app.Post("/relay-splits/save", h.HandleSaveRelaySplits)
	app.Post("/manual-results/save", h.HandleSaveManual)
}

// HandleForMeet lists a meet's results.
// @Summary List Meet Results
// @Description List all stored results of one meet with athletes and events preloaded.
// @Tags results
// @Produce json
// @Param meetId path int true "Meet identifier"
// @Success 200 {array} models.Result "Results"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /meet-results/{meetId} [get]
func (h *Handler) HandleForMeet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	meetID, err := c.ParamsInt("meetId")
	if err != nil || meetID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "meetId must be a positive integer"})
	}

	results, err := h.service.ForMeet(c.Context(), uint(meetID))
	if err != nil {
		l.Error("Result listing failed", zap.Int("meet_id", meetID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(results)
}

type compPlaceRequest struct {
	Updates []CompPlaceUpdate `json:"updates"`
}

// HandleUpdateCompPlace applies a batch of comp-place edits.
// @Summary Update Competition Places
// @Description Apply a batch of comp-place edits. Each value must be a rank, a status code, or empty to clear; invalid rows are rejected individually.
// @Tags results
// @Accept json
// @Produce json
// @Param updates body compPlaceRequest true "Edit batch"
// @Success 200 {object} CompPlaceOutcome "Batch outcome"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /meet-results/update-comp-place [post]
func (h *Handler) HandleUpdateCompPlace(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req compPlaceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if len(req.Updates) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "updates must not be empty"})
	}

	outcome, err := h.service.UpdateCompPlaces(c.Context(), req.Updates)
	if err != nil {
		l.Error("Comp-place update failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(outcome)
}

// HandleSaveRelaySplits saves a relay result with its per-leg splits.
// @Summary Save Relay Splits
// @Description Upsert a relay result and its splits; the leg-1 split is also stored as an individual result at the equivalent event. Idempotent on re-save.
// @Tags results
// @Accept json
// @Produce json
// @Param splits body RelaySplitsInput true "Relay splits"
// @Success 200 {object} RelaySplitsOutcome "Save outcome"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown event"
// @Router /relay-splits/save [post]
func (h *Handler) HandleSaveRelaySplits(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in RelaySplitsInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	outcome, err := h.service.SaveRelaySplits(c.Context(), in)
	if err != nil {
		var unknown *event.UnknownEventError
		if errors.As(err, &unknown) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		l.Warn("Relay splits save failed", zap.String("event_id", in.EventID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(outcome)
}

// HandleSaveManual persists manually keyed results.
// @Summary Save Manual Results
// @Description Save manually entered prelim/final times for a meet. Rows with both times empty are dropped; invalid rows are rejected individually.
// @Tags results
// @Accept json
// @Produce json
// @Param rows body ManualInput true "Manual entry rows"
// @Success 200 {object} ManualOutcome "Batch outcome"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /manual-results/save [post]
func (h *Handler) HandleSaveManual(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var in ManualInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	outcome, err := h.service.SaveManual(c.Context(), in)
	if err != nil {
		l.Warn("Manual results save failed", zap.Uint("meet_id", in.MeetID), zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(outcome)
}
