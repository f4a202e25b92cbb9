package commit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"swim-admin/feature/ingest/pipeline"
	meetmodels "swim-admin/feature/meet/models"

	"gorm.io/gorm"
)

// Outcome summarizes what one commit wrote. Athletes and Events count the
// distinct athletes and events the written rows touched.
type Outcome struct {
	MeetID         uint `json:"meet_id"`
	MeetCreated    bool `json:"meet_created"`
	ResultsCreated int  `json:"results_created"`
	ResultsUpdated int  `json:"results_updated"`
	RowsSkipped    int  `json:"rows_skipped"`
	Athletes       int  `json:"athletes"`
	Events         int  `json:"events"`
}

// Error wraps a commit failure with the source file name, so multi-file
// uploads can report which file the failure belongs to.
type Error struct {
	File string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("commit of %q failed: %v", e.File, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Apply persists the admissible rows of a run in a single transaction.
// The meet is found or created on its natural identity (name, date,
// course) and every result is upserted on its natural key, so committing
// the same file twice leaves the database unchanged. Inadmissible rows
// are skipped, never partially written.
func Apply(ctx context.Context, db *gorm.DB, run *pipeline.Run, fileName string) (*Outcome, error) {
	outcome := &Outcome{}
	athletes := make(map[uint]struct{})
	events := make(map[string]struct{})

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meet, created, err := findOrCreateMeet(tx, run)
		if err != nil {
			return err
		}
		outcome.MeetID = meet.ID
		outcome.MeetCreated = created

		for _, row := range run.Rows {
			if !row.Verdict.Admissible {
				outcome.RowsSkipped++
				continue
			}

			result := meetmodels.Result{
				MeetID:       meet.ID,
				EventID:      row.EventID,
				Round:        row.Raw.Round,
				TimeMS:       row.Verdict.TimeMS,
				ResultStatus: row.Verdict.Status,
				CompPlace:    compPlace(row.Raw.PlaceText),
			}
			if row.Raw.Relay {
				team := strings.TrimSpace(row.Raw.Name)
				result.RelayTeam = &team
			} else {
				athleteID := row.Match.AthleteID
				result.AthleteID = &athleteID
			}

			rowCreated, err := UpsertResult(tx, &result)
			if err != nil {
				return fmt.Errorf("line %d of %s: %w", row.Raw.Line, row.Raw.Sheet, err)
			}
			if rowCreated {
				outcome.ResultsCreated++
			} else {
				outcome.ResultsUpdated++
			}
			if result.AthleteID != nil {
				athletes[*result.AthleteID] = struct{}{}
			}
			events[result.EventID] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, &Error{File: fileName, Err: err}
	}

	outcome.Athletes = len(athletes)
	outcome.Events = len(events)
	return outcome, nil
}

// UpsertResult writes a result on its natural key
// (meet, event, round, athlete-or-team): an existing row is updated in
// place, otherwise a new one is created. It reports whether a row was
// created.
func UpsertResult(tx *gorm.DB, result *meetmodels.Result) (bool, error) {
	query := tx.Where("meet_id = ? AND event_id = ? AND round = ?",
		result.MeetID, result.EventID, result.Round)
	if result.RelayTeam != nil {
		query = query.Where("relay_team = ? AND athlete_id IS NULL", *result.RelayTeam)
	} else {
		query = query.Where("athlete_id = ? AND relay_team IS NULL", result.AthleteID)
	}

	var existing meetmodels.Result
	err := query.First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := tx.Create(result).Error; err != nil {
			return false, fmt.Errorf("failed to create result: %w", err)
		}
		return true, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up result: %w", err)
	}

	updates := map[string]any{
		"time_ms":       result.TimeMS,
		"comp_place":    result.CompPlace,
		"result_status": result.ResultStatus,
	}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return false, fmt.Errorf("failed to update result: %w", err)
	}
	result.ID = existing.ID
	return false, nil
}

func findOrCreateMeet(tx *gorm.DB, run *pipeline.Run) (*meetmodels.Meet, bool, error) {
	meta := run.Meta

	var meet meetmodels.Meet
	err := tx.Where("name = ? AND date = ? AND course = ?", meta.Name, meta.Date, meta.Course).
		First(&meet).Error
	if err == nil {
		return &meet, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up meet: %w", err)
	}

	meet = meetmodels.Meet{
		Name:   meta.Name,
		City:   meta.City,
		Date:   meta.Date,
		Course: meta.Course,
	}
	if err := tx.Create(&meet).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create meet: %w", err)
	}
	return &meet, true, nil
}

// compPlace keeps a numeric rank or a non-finishing status code from the
// placing column; anything else is dropped.
func compPlace(placeText string) *string {
	text := strings.ToUpper(strings.TrimSpace(placeText))
	if text == "" {
		return nil
	}
	if _, err := strconv.Atoi(text); err == nil {
		return &text
	}
	if meetmodels.IsValidStatus(text) {
		return &text
	}
	return nil
}
