package meet

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"swim-admin/feature/meet/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrMeetNotFound is returned when a meet id has no stored row.
var ErrMeetNotFound = errors.New("meet not found")

// ErrAliasTaken is returned when an alias already belongs to another meet.
var ErrAliasTaken = errors.New("alias already belongs to another meet")

// Service handles meet administration.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new meet service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// List returns all meets, newest first.
func (s *Service) List(ctx context.Context) ([]models.Meet, error) {
	var meets []models.Meet
	if err := s.db.WithContext(ctx).Order("date DESC, id DESC").Find(&meets).Error; err != nil {
		return nil, fmt.Errorf("failed to list meets: %w", err)
	}
	return meets, nil
}

// CreateInput is the payload for creating a meet by hand, ahead of any
// file ingestion.
type CreateInput struct {
	Name            string `json:"name"`
	City            string `json:"city"`
	Date            string `json:"date"`
	Course          string `json:"course"`
	ParticipantType string `json:"participant_type"`
	Scope           string `json:"scope"`
}

// Create stores a new meet. City is optional; everything else is required.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Meet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	if in.Course != models.CourseLCM && in.Course != models.CourseSCM {
		return nil, fmt.Errorf("course must be %s or %s", models.CourseLCM, models.CourseSCM)
	}

	participantType := models.ParticipantOpen
	if in.ParticipantType != "" {
		if participantType, err = models.NormalizeParticipantType(in.ParticipantType); err != nil {
			return nil, err
		}
	}
	scope := models.ScopeDomestic
	if in.Scope != "" {
		if scope, err = models.NormalizeScope(in.Scope); err != nil {
			return nil, err
		}
	}

	meet := models.Meet{
		Name:            strings.TrimSpace(in.Name),
		City:            strings.TrimSpace(in.City),
		Date:            date,
		Course:          in.Course,
		ParticipantType: participantType,
		Scope:           scope,
	}
	if err := s.db.WithContext(ctx).Create(&meet).Error; err != nil {
		return nil, fmt.Errorf("failed to create meet: %w", err)
	}

	s.logger.Info("Meet created", zap.Uint("meet_id", meet.ID), zap.String("name", meet.Name))
	return &meet, nil
}

// SetAlias assigns or clears a meet's short alias. Aliases are unique
// across meets.
func (s *Service) SetAlias(ctx context.Context, id uint, alias *string) (*models.Meet, error) {
	var meet models.Meet

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&meet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetNotFound
			}
			return fmt.Errorf("failed to load meet %d: %w", id, err)
		}

		if alias != nil {
			trimmed := strings.TrimSpace(*alias)
			if trimmed == "" {
				alias = nil
			} else {
				alias = &trimmed
				var count int64
				if err := tx.Model(&models.Meet{}).
					Where("alias = ? AND id <> ?", trimmed, id).Count(&count).Error; err != nil {
					return fmt.Errorf("failed to check alias: %w", err)
				}
				if count > 0 {
					return ErrAliasTaken
				}
			}
		}

		meet.Alias = alias
		if err := tx.Model(&meet).Update("alias", alias).Error; err != nil {
			return fmt.Errorf("failed to update alias: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &meet, nil
}

// CategoryInput carries the two category fields, or a legacy delimited
// string ("OPEN-D") which is split and normalized.
type CategoryInput struct {
	ParticipantType string `json:"participant_type"`
	Scope           string `json:"scope"`
	Category        string `json:"category"`
}

// SetCategory updates a meet's participant type and scope.
func (s *Service) SetCategory(ctx context.Context, id uint, in CategoryInput) (*models.Meet, error) {
	participantType, scope := in.ParticipantType, in.Scope
	if in.Category != "" {
		var err error
		if participantType, scope, err = models.ParseCategory(in.Category); err != nil {
			return nil, err
		}
	} else {
		var err error
		if participantType, err = models.NormalizeParticipantType(participantType); err != nil {
			return nil, err
		}
		if scope, err = models.NormalizeScope(scope); err != nil {
			return nil, err
		}
	}

	var meet models.Meet
	if err := s.db.WithContext(ctx).First(&meet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMeetNotFound
		}
		return nil, fmt.Errorf("failed to load meet %d: %w", id, err)
	}

	updates := map[string]any{"participant_type": participantType, "scope": scope}
	if err := s.db.WithContext(ctx).Model(&meet).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return &meet, nil
}

// Delete removes a meet with all its results and relay splits.
func (s *Service) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meet models.Meet
		if err := tx.First(&meet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMeetNotFound
			}
			return fmt.Errorf("failed to load meet %d: %w", id, err)
		}

		// Explicit cascade: not every deployment enforces FK cascades.
		if err := tx.Where("result_id IN (?)",
			tx.Model(&models.Result{}).Select("id").Where("meet_id = ?", id),
		).Delete(&models.RelaySplit{}).Error; err != nil {
			return fmt.Errorf("failed to delete relay splits: %w", err)
		}
		if err := tx.Where("meet_id = ?", id).Delete(&models.Result{}).Error; err != nil {
			return fmt.Errorf("failed to delete results: %w", err)
		}
		if err := tx.Delete(&meet).Error; err != nil {
			return fmt.Errorf("failed to delete meet %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Meet deleted", zap.Uint("meet_id", id))
	return nil
}
