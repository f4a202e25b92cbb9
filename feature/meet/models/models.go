package models

import (
	"fmt"
	"strings"
	"time"

	eventmodels "swim-admin/feature/event/models"
	rostermodels "swim-admin/feature/roster/models"
)

// Pool courses.
const (
	CourseLCM = "LCM"
	CourseSCM = "SCM"
)

// Participant types.
const (
	ParticipantOpen    = "OPEN"
	ParticipantMasters = "MASTERS"
	ParticipantPara    = "PARA"
)

// Meet scopes. NATIONAL_TEAM covers national-team trials and selection
// meets; legacy single-letter inputs are normalized by NormalizeScope.
const (
	ScopeDomestic      = "DOMESTIC"
	ScopeInternational = "INTERNATIONAL"
	ScopeNationalTeam  = "NATIONAL_TEAM"
)

// Rounds.
const (
	RoundPrelim = "PRELIM"
	RoundFinal  = "FINAL"
)

// Non-finishing result statuses. ResultStatusOK marks a regular finish.
const (
	ResultStatusOK = "OK"
	StatusDQ       = "DQ"
	StatusDNS      = "DNS"
	StatusDNF      = "DNF"
	StatusSCR      = "SCR"
)

// Meet is one competition. Category is two orthogonal fields
// (participant type and scope), not a single delimited string.
type Meet struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(160);index:idx_meet_natural" json:"name"`
	Alias           *string   `gorm:"type:varchar(40);uniqueIndex" json:"alias"`
	Date            time.Time `gorm:"type:date;index:idx_meet_natural" json:"date"`
	City            string    `gorm:"type:varchar(80)" json:"city"`
	ParticipantType string    `gorm:"type:varchar(10);default:OPEN" json:"participant_type"`
	Scope           string    `gorm:"type:varchar(15);default:DOMESTIC" json:"scope"`
	Course          string    `gorm:"type:varchar(3);index:idx_meet_natural" json:"course"`
}

// TableName overrides the default pluralized name.
func (Meet) TableName() string {
	return "meets"
}

// Result is one performance at a meet. It is uniquely keyed by
// (meet, event, round, athlete-or-team); re-ingesting a file updates rows
// on that key instead of duplicating them.
//
// CompPlace holds either a numeric rank or one of the non-finishing status
// codes, matching what appears in the placing column of source sheets.
type Result struct {
	ID           uint                  `gorm:"primaryKey" json:"id"`
	MeetID       uint                  `gorm:"uniqueIndex:idx_result_key" json:"meet_id"`
	Meet         *Meet                 `gorm:"foreignKey:MeetID;constraint:OnDelete:CASCADE" json:"-"`
	EventID      string                `gorm:"type:varchar(40);uniqueIndex:idx_result_key" json:"event_id"`
	Event        *eventmodels.SwimEvent `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Round        string                `gorm:"type:varchar(10);uniqueIndex:idx_result_key" json:"round"`
	AthleteID    *uint                 `gorm:"uniqueIndex:idx_result_key" json:"athlete_id"`
	Athlete      *rostermodels.Athlete `gorm:"foreignKey:AthleteID" json:"athlete,omitempty"`
	RelayTeam    *string               `gorm:"type:varchar(80);uniqueIndex:idx_result_key" json:"relay_team"`
	TimeMS       *int                  `json:"time_ms"`
	CompPlace    *string               `gorm:"type:varchar(8)" json:"comp_place"`
	ResultStatus string                `gorm:"type:varchar(4);default:OK" json:"result_status"`
}

// TableName overrides the default pluralized name.
func (Result) TableName() string {
	return "results"
}

// RelaySplit is one leg of a relay result. Leg 1 is the leadoff; its split
// is also materialized as a standalone individual Result.
type RelaySplit struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ResultID  uint    `gorm:"uniqueIndex:idx_split_key" json:"result_id"`
	Result    *Result `gorm:"foreignKey:ResultID;constraint:OnDelete:CASCADE" json:"-"`
	Leg       int     `gorm:"uniqueIndex:idx_split_key" json:"leg"`
	AthleteID uint    `json:"athlete_id"`
	SplitMS   int     `json:"split_ms"`
}

// TableName overrides the default pluralized name.
func (RelaySplit) TableName() string {
	return "relay_splits"
}

// IsValidStatus reports whether s belongs to the closed non-finishing
// status vocabulary.
func IsValidStatus(s string) bool {
	switch s {
	case StatusDQ, StatusDNS, StatusDNF, StatusSCR:
		return true
	default:
		return false
	}
}

// NormalizeScope maps legacy scope inputs onto the canonical three-value
// vocabulary. The narrower {D, I} vocabulary seen in older exports is
// treated as legacy input, never written back.
func NormalizeScope(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "D", ScopeDomestic:
		return ScopeDomestic, nil
	case "I", ScopeInternational:
		return ScopeInternational, nil
	case "N", "NATIONAL-TEAM", ScopeNationalTeam:
		return ScopeNationalTeam, nil
	default:
		return "", fmt.Errorf("unknown meet scope %q", s)
	}
}

// NormalizeParticipantType validates and canonicalizes a participant type.
func NormalizeParticipantType(s string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case ParticipantOpen:
		return ParticipantOpen, nil
	case ParticipantMasters:
		return ParticipantMasters, nil
	case ParticipantPara:
		return ParticipantPara, nil
	default:
		return "", fmt.Errorf("unknown participant type %q", s)
	}
}

// ParseCategory splits a legacy delimited category string
// ("OPEN-D", "MASTERS-INTERNATIONAL") into its two fields. The split is on
// the first hyphen only, so scope values containing hyphens survive.
func ParseCategory(category string) (participantType, scope string, err error) {
	parts := strings.SplitN(category, "-", 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("category %q is not of the form TYPE-SCOPE", category)
	}
	participantType, err = NormalizeParticipantType(parts[0])
	if err != nil {
		return "", "", err
	}
	scope, err = NormalizeScope(parts[1])
	if err != nil {
		return "", "", err
	}
	return participantType, scope, nil
}
