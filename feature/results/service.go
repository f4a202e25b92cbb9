package results

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"swim-admin/feature/event"
	eventmodels "swim-admin/feature/event/models"
	"swim-admin/feature/ingest/commit"
	"swim-admin/feature/ingest/parser"
	meetmodels "swim-admin/feature/meet/models"
	rostermodels "swim-admin/feature/roster/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles stored result operations: listing, comp-place edits,
// relay splits and manual entry.
type Service struct {
	db     *gorm.DB
	events *event.Service
	logger *zap.Logger
}

// NewService creates a new results service.
func NewService(db *gorm.DB, events *event.Service, logger *zap.Logger) *Service {
	return &Service{db: db, events: events, logger: logger}
}

// ForMeet lists a meet's results with their athletes and events.
func (s *Service) ForMeet(ctx context.Context, meetID uint) ([]meetmodels.Result, error) {
	var results []meetmodels.Result
	err := s.db.WithContext(ctx).
		Preload("Athlete").Preload("Athlete.Club").Preload("Event").
		Where("meet_id = ?", meetID).
		Order("event_id, round, time_ms").
		Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load results for meet %d: %w", meetID, err)
	}
	return results, nil
}

// CompPlaceUpdate is one requested comp-place edit.
type CompPlaceUpdate struct {
	ResultID uint   `json:"result_id"`
	Value    string `json:"value"`
}

// Rejection reports one row an edit batch refused.
type Rejection struct {
	ResultID uint   `json:"result_id"`
	Reason   string `json:"reason"`
}

// CompPlaceOutcome summarizes a comp-place edit batch.
type CompPlaceOutcome struct {
	Updated  int         `json:"updated"`
	Rejected []Rejection `json:"rejected"`
}

// UpdateCompPlaces applies a batch of comp-place edits. A value must be a
// numeric rank, a non-finishing status code, or empty to clear the field.
// An invalid value rejects that single row; the batch continues.
func (s *Service) UpdateCompPlaces(ctx context.Context, updates []CompPlaceUpdate) (*CompPlaceOutcome, error) {
	outcome := &CompPlaceOutcome{Rejected: []Rejection{}}

	for _, update := range updates {
		value, err := normalizeCompPlace(update.Value)
		if err != nil {
			outcome.Rejected = append(outcome.Rejected, Rejection{ResultID: update.ResultID, Reason: err.Error()})
			continue
		}

		res := s.db.WithContext(ctx).Model(&meetmodels.Result{}).
			Where("id = ?", update.ResultID).
			Update("comp_place", value)
		if res.Error != nil {
			return nil, fmt.Errorf("failed to update result %d: %w", update.ResultID, res.Error)
		}
		if res.RowsAffected == 0 {
			outcome.Rejected = append(outcome.Rejected, Rejection{ResultID: update.ResultID, Reason: "result not found"})
			continue
		}
		outcome.Updated++
	}

	return outcome, nil
}

func normalizeCompPlace(raw string) (*string, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(value); err == nil {
		if n <= 0 {
			return nil, fmt.Errorf("place %d is not a positive rank", n)
		}
		return &value, nil
	}
	if meetmodels.IsValidStatus(value) {
		return &value, nil
	}
	return nil, fmt.Errorf("%q is neither a rank nor a status code", raw)
}

// RelayLeg is one leg of a relay splits submission.
type RelayLeg struct {
	AthleteID uint   `json:"athlete_id"`
	Split     string `json:"split"`
}

// RelaySplitsInput is a relay splits submission for one relay result.
type RelaySplitsInput struct {
	MeetID  uint       `json:"meet_id"`
	EventID string     `json:"event_id"`
	Round   string     `json:"round"`
	Team    string     `json:"team"`
	Place   string     `json:"place"`
	Legs    []RelayLeg `json:"legs"`
}

// RelaySplitsOutcome reports what a splits save wrote.
type RelaySplitsOutcome struct {
	ResultID        uint   `json:"result_id"`
	Legs            int    `json:"legs"`
	LeadoffEventID  string `json:"leadoff_event_id"`
	LeadoffResultID uint   `json:"leadoff_result_id"`
}

// SaveRelaySplits upserts a relay result and its per-leg splits in one
// transaction. The leg-1 split is also written as a standalone individual
// result at the equivalent event, so leadoff times are comparable with
// individual swims. Re-saving the same splits updates rows in place.
func (s *Service) SaveRelaySplits(ctx context.Context, in RelaySplitsInput) (*RelaySplitsOutcome, error) {
	if err := validateRelayInput(in); err != nil {
		return nil, err
	}

	resolver, err := s.events.Resolver(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}
	relayEvent, ok := resolver.Lookup(in.EventID)
	if !ok {
		return nil, &event.UnknownEventError{ID: in.EventID}
	}
	if relayEvent.Kind != eventmodels.KindRelay {
		return nil, fmt.Errorf("event %s is not a relay event", in.EventID)
	}
	leadoffEventID, err := resolver.LeadoffEquivalent(in.EventID)
	if err != nil {
		return nil, err
	}

	splits := make([]int, len(in.Legs))
	total := 0
	for i, leg := range in.Legs {
		ms, err := parser.ParseTime(leg.Split)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		splits[i] = ms
		total += ms
	}

	place, err := normalizeCompPlace(in.Place)
	if err != nil {
		return nil, err
	}

	outcome := &RelaySplitsOutcome{Legs: len(in.Legs), LeadoffEventID: leadoffEventID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team := strings.TrimSpace(in.Team)
		relayResult := meetmodels.Result{
			MeetID:       in.MeetID,
			EventID:      in.EventID,
			Round:        in.Round,
			RelayTeam:    &team,
			TimeMS:       &total,
			CompPlace:    place,
			ResultStatus: meetmodels.ResultStatusOK,
		}
		if _, err := commit.UpsertResult(tx, &relayResult); err != nil {
			return err
		}
		outcome.ResultID = relayResult.ID

		for i, leg := range in.Legs {
			if err := upsertSplit(tx, relayResult.ID, i+1, leg.AthleteID, splits[i]); err != nil {
				return err
			}
		}
		// A shorter re-submission drops the now-stale trailing legs.
		if err := tx.Where("result_id = ? AND leg > ?", relayResult.ID, len(in.Legs)).
			Delete(&meetmodels.RelaySplit{}).Error; err != nil {
			return fmt.Errorf("failed to trim stale splits: %w", err)
		}

		// Leadoff propagation: leg 1 swims a full individual distance from
		// a standing start, so its split doubles as an individual result.
		leadoffID := in.Legs[0].AthleteID
		leadoffResult := meetmodels.Result{
			MeetID:       in.MeetID,
			EventID:      leadoffEventID,
			Round:        in.Round,
			AthleteID:    &leadoffID,
			TimeMS:       &splits[0],
			ResultStatus: meetmodels.ResultStatusOK,
		}
		if _, err := commit.UpsertResult(tx, &leadoffResult); err != nil {
			return err
		}
		outcome.LeadoffResultID = leadoffResult.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Relay splits saved",
		zap.Uint("meet_id", in.MeetID),
		zap.String("event_id", in.EventID),
		zap.Int("legs", len(in.Legs)))
	return outcome, nil
}

func validateRelayInput(in RelaySplitsInput) error {
	if in.MeetID == 0 {
		return fmt.Errorf("meet_id is required")
	}
	if strings.TrimSpace(in.Team) == "" {
		return fmt.Errorf("team is required")
	}
	if in.Round != meetmodels.RoundPrelim && in.Round != meetmodels.RoundFinal {
		return fmt.Errorf("round must be %s or %s", meetmodels.RoundPrelim, meetmodels.RoundFinal)
	}
	if len(in.Legs) == 0 {
		return fmt.Errorf("at least one leg is required")
	}
	for i, leg := range in.Legs {
		if leg.AthleteID == 0 {
			return fmt.Errorf("leg %d: athlete_id is required", i+1)
		}
	}
	return nil
}

func upsertSplit(tx *gorm.DB, resultID uint, leg int, athleteID uint, splitMS int) error {
	var existing meetmodels.RelaySplit
	err := tx.Where("result_id = ? AND leg = ?", resultID, leg).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		split := meetmodels.RelaySplit{ResultID: resultID, Leg: leg, AthleteID: athleteID, SplitMS: splitMS}
		if err := tx.Create(&split).Error; err != nil {
			return fmt.Errorf("failed to create split for leg %d: %w", leg, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("failed to look up split for leg %d: %w", leg, err)
	}

	updates := map[string]any{"athlete_id": athleteID, "split_ms": splitMS}
	if err := tx.Model(&existing).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update split for leg %d: %w", leg, err)
	}
	return nil
}

// ManualRow is one manual entry row: an athlete and event with an optional
// prelim and final time.
type ManualRow struct {
	AthleteID uint   `json:"athlete_id"`
	EventID   string `json:"event_id"`
	Prelim    string `json:"prelim"`
	Final     string `json:"final"`
}

// ManualInput is a manual results submission for one meet.
type ManualInput struct {
	MeetID uint        `json:"meet_id"`
	Rows   []ManualRow `json:"rows"`
}

// ManualOutcome summarizes a manual entry batch.
type ManualOutcome struct {
	Saved    int         `json:"saved"`
	Dropped  int         `json:"dropped"`
	Rejected []Rejection `json:"rejected"`
}

// SaveManual persists manually keyed results. Rows with both time fields
// empty are silently dropped; a row with an invalid time, unknown event or
// athlete not on the roster is rejected on its own and the batch continues.
func (s *Service) SaveManual(ctx context.Context, in ManualInput) (*ManualOutcome, error) {
	if in.MeetID == 0 {
		return nil, fmt.Errorf("meet_id is required")
	}

	resolver, err := s.events.Resolver(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load event catalog: %w", err)
	}

	outcome := &ManualOutcome{Rejected: []Rejection{}}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Manual rows reference roster athletes; an id with no roster row
		// would store an orphan result.
		onRoster, err := rosterAthletes(tx, in.Rows)
		if err != nil {
			return err
		}

		for _, row := range in.Rows {
			prelim := strings.TrimSpace(row.Prelim)
			final := strings.TrimSpace(row.Final)
			if prelim == "" && final == "" {
				outcome.Dropped++
				continue
			}

			if _, ok := resolver.Lookup(row.EventID); !ok {
				outcome.Rejected = append(outcome.Rejected,
					Rejection{ResultID: 0, Reason: fmt.Sprintf("athlete %d: unknown event %s", row.AthleteID, row.EventID)})
				continue
			}
			if !onRoster[row.AthleteID] {
				outcome.Rejected = append(outcome.Rejected,
					Rejection{ResultID: 0, Reason: fmt.Sprintf("athlete %d: not on the roster", row.AthleteID)})
				continue
			}

			saved, rejected := s.saveManualRow(tx, in.MeetID, row, prelim, final)
			outcome.Saved += saved
			outcome.Rejected = append(outcome.Rejected, rejected...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// rosterAthletes resolves the submitted athlete ids against the roster in
// one query.
func rosterAthletes(tx *gorm.DB, rows []ManualRow) (map[uint]bool, error) {
	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		if row.AthleteID != 0 {
			ids = append(ids, row.AthleteID)
		}
	}

	onRoster := make(map[uint]bool, len(ids))
	if len(ids) == 0 {
		return onRoster, nil
	}

	var known []uint
	if err := tx.Model(&rostermodels.Athlete{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return nil, fmt.Errorf("failed to check athletes against the roster: %w", err)
	}
	for _, id := range known {
		onRoster[id] = true
	}
	return onRoster, nil
}

func (s *Service) saveManualRow(tx *gorm.DB, meetID uint, row ManualRow, prelim, final string) (int, []Rejection) {
	saved := 0
	var rejected []Rejection

	rounds := []struct {
		round string
		text  string
	}{
		{meetmodels.RoundPrelim, prelim},
		{meetmodels.RoundFinal, final},
	}
	for _, r := range rounds {
		if r.text == "" {
			continue
		}
		ms, err := parser.ParseTime(r.text)
		if err != nil {
			rejected = append(rejected, Rejection{
				Reason: fmt.Sprintf("athlete %d %s %s: %v", row.AthleteID, row.EventID, r.round, err),
			})
			continue
		}

		athleteID := row.AthleteID
		result := meetmodels.Result{
			MeetID:       meetID,
			EventID:      row.EventID,
			Round:        r.round,
			AthleteID:    &athleteID,
			TimeMS:       &ms,
			ResultStatus: meetmodels.ResultStatusOK,
		}
		if _, err := commit.UpsertResult(tx, &result); err != nil {
			rejected = append(rejected, Rejection{
				Reason: fmt.Sprintf("athlete %d %s %s: %v", row.AthleteID, row.EventID, r.round, err),
			})
			continue
		}
		saved++
	}
	return saved, rejected
}
