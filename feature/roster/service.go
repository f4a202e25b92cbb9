package roster

import (
	"context"
	"fmt"

	"swim-admin/feature/ingest/match"
	"swim-admin/feature/roster/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service provides read access to the athlete roster. The roster is
// pre-existing data; nothing in this service creates or mutates athletes.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new roster service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Search finds athletes by name fragment for manual-entry roster building.
func (s *Service) Search(ctx context.Context, query string, limit int) ([]models.Athlete, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	var athletes []models.Athlete
	err := s.db.WithContext(ctx).
		Preload("Club").
		Where("full_name LIKE ?", "%"+query+"%").
		Order("full_name").
		Limit(limit).
		Find(&athletes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search athletes: %w", err)
	}
	return athletes, nil
}

// Get loads one athlete by id.
func (s *Service) Get(ctx context.Context, id uint) (*models.Athlete, error) {
	var athlete models.Athlete
	if err := s.db.WithContext(ctx).Preload("Club").First(&athlete, id).Error; err != nil {
		return nil, fmt.Errorf("failed to load athlete %d: %w", id, err)
	}
	return &athlete, nil
}

// LoadEntries reads the full roster and club table in matcher form.
func (s *Service) LoadEntries(ctx context.Context) ([]match.Entry, map[string]uint, error) {
	var athletes []models.Athlete
	if err := s.db.WithContext(ctx).Find(&athletes).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	var clubs []models.Club
	if err := s.db.WithContext(ctx).Find(&clubs).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load clubs: %w", err)
	}

	entries := make([]match.Entry, 0, len(athletes))
	for _, a := range athletes {
		entries = append(entries, match.Entry{
			ID:        a.ID,
			Name:      a.FullName,
			Birthdate: a.Birthdate,
			Gender:    a.Gender,
			ClubID:    a.ClubID,
		})
	}

	clubIndex := make(map[string]uint, len(clubs))
	for _, c := range clubs {
		clubIndex[c.Name] = c.ID
	}

	return entries, clubIndex, nil
}
