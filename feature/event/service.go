package event

import (
	"context"
	"errors"
	"fmt"

	"swim-admin/feature/event/models"
	meetmodels "swim-admin/feature/meet/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDuplicateEvent is returned when an edit would re-derive an identifier
// that already belongs to another event.
var ErrDuplicateEvent = errors.New("an event with the derived identifier already exists")

// ErrInvalidEvent marks an edit whose fields fall outside the closed event
// vocabularies.
var ErrInvalidEvent = errors.New("invalid event fields")

// Service handles event reference data operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new event service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Resolver loads the full reference table into an in-memory resolver for
// one ingestion run.
func (s *Service) Resolver(ctx context.Context) (*Resolver, error) {
	var events []models.SwimEvent
	if err := s.db.WithContext(ctx).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	return NewResolver(events), nil
}

// Filter is the reverse lookup used by manual entry: events narrowed by
// course and gender, optionally by kind.
func (s *Service) Filter(ctx context.Context, course, gender string, relay *bool) ([]models.SwimEvent, error) {
	q := s.db.WithContext(ctx).Model(&models.SwimEvent{})
	if course != "" {
		q = q.Where("course = ?", course)
	}
	if gender != "" {
		q = q.Where("gender = ?", gender)
	}
	if relay != nil {
		kind := models.KindIndividual
		if *relay {
			kind = models.KindRelay
		}
		q = q.Where("kind = ?", kind)
	}

	var events []models.SwimEvent
	if err := q.Order("id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to filter events: %w", err)
	}
	return events, nil
}

// Exists reports whether an event identifier is taken.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.SwimEvent{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check event %s: %w", id, err)
	}
	return count > 0, nil
}

// Update edits an event's fields. The identifier is re-derived from the new
// fields; when it changes, the update is rejected if the derived identifier
// is already taken, otherwise the event is renamed in place and results
// follow.
func (s *Service) Update(ctx context.Context, id string, fields models.SwimEvent) (*models.SwimEvent, error) {
	var updated models.SwimEvent

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SwimEvent
		if err := tx.First(&existing, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &UnknownEventError{ID: id}
			}
			return fmt.Errorf("failed to load event %s: %w", id, err)
		}

		existing.Course = fields.Course
		existing.Kind = fields.Kind
		existing.Distance = fields.Distance
		existing.Stroke = fields.Stroke
		existing.Gender = fields.Gender

		// A partial edit body leaves unset fields zeroed; deriving an
		// identifier from them would rename the event to garbage.
		if err := existing.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}

		newID := existing.DeriveID()
		if newID == id {
			if err := tx.Save(&existing).Error; err != nil {
				return fmt.Errorf("failed to update event %s: %w", id, err)
			}
			updated = existing
			return nil
		}

		// Explicit duplicate-id guard before renaming.
		var count int64
		if err := tx.Model(&models.SwimEvent{}).Where("id = ?", newID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check event %s: %w", newID, err)
		}
		if count > 0 {
			return ErrDuplicateEvent
		}

		// Rename: insert under the new id, move results over, drop the
		// old row.
		existing.ID = newID
		if err := tx.Create(&existing).Error; err != nil {
			return fmt.Errorf("failed to create renamed event %s: %w", newID, err)
		}
		if err := tx.Model(&meetmodels.Result{}).Where("event_id = ?", id).
			Update("event_id", newID).Error; err != nil {
			return fmt.Errorf("failed to move results to event %s: %w", newID, err)
		}
		if err := tx.Delete(&models.SwimEvent{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to remove renamed event %s: %w", id, err)
		}

		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Event updated", zap.String("old_id", id), zap.String("new_id", updated.ID))
	return &updated, nil
}
