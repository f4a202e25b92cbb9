package validate

import (
	"fmt"
	"strings"
	"time"

	"swim-admin/feature/ingest/match"
	"swim-admin/feature/ingest/parser"
	meetmodels "swim-admin/feature/meet/models"
)

// Config holds the ingestion pipeline policy.
type Config struct {
	// NameThreshold is the Jaro-Winkler similarity cutoff for fuzzy
	// athlete matching.
	NameThreshold float64 `mapstructure:"name_threshold" default:"0.88"`
	// BlockOnClubMiss makes club_misses a blocking (fatal) category.
	BlockOnClubMiss bool `mapstructure:"block_on_club_miss" default:"false"`
	// BlockOnNameMismatch makes name_format_mismatches with a candidate a
	// blocking (fatal) category. Rows with no candidate at all always block.
	BlockOnNameMismatch bool `mapstructure:"block_on_name_mismatch" default:"false"`
	// RosterCacheSeconds is how long a roster snapshot is reused between
	// ingestion runs before being rebuilt.
	RosterCacheSeconds int `mapstructure:"roster_cache_seconds" default:"30"`
}

// RowInput is one pipeline row after parsing, event resolution and
// athlete matching.
type RowInput struct {
	Row parser.Row
	// Match is the matcher verdict; ignored for relay rows, which carry a
	// team instead of an athlete.
	Match match.Classification
	// EventID is the resolved canonical event id, empty when EventErr is set.
	EventID string
	// EventErr is the resolver failure for this row, if any.
	EventErr error
	// RosterBirthdate is the matched athlete's stored birthdate, if any.
	RosterBirthdate *time.Time
}

// Verdict is the per-row validation outcome.
type Verdict struct {
	// Admissible marks the row as eligible for commit.
	Admissible bool
	// Fatal lists the categories that made the row inadmissible.
	Fatal []Category
	// TimeMS is the parsed time; nil for status-only rows.
	TimeMS *int
	// Status is the result status: OK, or a non-finishing code.
	Status string
}

// Validator inspects matched rows, fills the run-level issue report and
// decides per-row admissibility. One Validator instance covers one file;
// the duplicate check is scoped to it.
type Validator struct {
	cfg    Config
	report *Report
	seen   map[string]parser.Row
}

// New creates a Validator with an empty report.
func New(cfg Config) *Validator {
	return &Validator{
		cfg:    cfg,
		report: NewReport(),
		seen:   make(map[string]parser.Row),
	}
}

// Report returns the accumulated issue report.
func (v *Validator) Report() *Report {
	return v.report
}

// Check classifies one row. Row-level problems are appended to the report
// and never abort the run.
func (v *Validator) Check(in RowInput) Verdict {
	verdict := Verdict{Admissible: true, Status: meetmodels.ResultStatusOK}

	v.checkTime(in, &verdict)
	v.checkEvent(in, &verdict)

	if !in.Row.Relay {
		v.checkAthlete(in, &verdict)
		v.checkBirthdate(in, &verdict)
		v.checkDuplicate(in, &verdict)
	}

	return verdict
}

func (v *Validator) checkTime(in RowInput, verdict *Verdict) {
	timeText := strings.ToUpper(strings.TrimSpace(in.Row.TimeText))
	placeText := strings.ToUpper(strings.TrimSpace(in.Row.PlaceText))

	// A status code may arrive in the time column ("DNS" instead of a
	// time) or in the placing column.
	status := ""
	if meetmodels.IsValidStatus(timeText) {
		status = timeText
		timeText = ""
	}
	if status == "" && meetmodels.IsValidStatus(placeText) {
		status = placeText
	}

	switch {
	case timeText == "" && status != "":
		// Status-only row: valid, no time.
		verdict.Status = status
	case timeText == "" && status == "":
		v.fail(in, verdict, CategoryInvalidTimes, "row has neither a time nor a status code")
	case status != "":
		// Non-finishing status must clear the time field.
		v.fail(in, verdict, CategoryInvalidTimes,
			fmt.Sprintf("status %s present but time field %q is not cleared", status, in.Row.TimeText))
	default:
		ms, err := parser.ParseTime(timeText)
		if err != nil {
			v.fail(in, verdict, CategoryInvalidTimes, err.Error())
			return
		}
		verdict.TimeMS = &ms
	}
}

func (v *Validator) checkEvent(in RowInput, verdict *Verdict) {
	if in.EventErr != nil {
		v.fail(in, verdict, CategoryUnknownEvents, in.EventErr.Error())
	}
}

func (v *Validator) checkAthlete(in RowInput, verdict *Verdict) {
	switch in.Match.Kind {
	case match.Matched:
		// Nothing to report.
	case match.NameMismatch:
		detail := fmt.Sprintf("name differs from roster athlete #%d (similarity %.2f)",
			in.Match.AthleteID, in.Match.Similarity)
		if v.cfg.BlockOnNameMismatch {
			v.fail(in, verdict, CategoryNameMismatches, detail)
		} else {
			v.note(in, CategoryNameMismatches, detail)
		}
	case match.ClubMiss:
		detail := fmt.Sprintf("club %q does not resolve to a known club", in.Row.Club)
		if v.cfg.BlockOnClubMiss {
			v.fail(in, verdict, CategoryClubMisses, detail)
		} else {
			v.note(in, CategoryClubMisses, detail)
		}
	case match.Unmatched:
		v.fail(in, verdict, CategoryNameMismatches, "no matching athlete on the roster")
	}
}

func (v *Validator) checkBirthdate(in RowInput, verdict *Verdict) {
	if in.RosterBirthdate != nil {
		return
	}
	if in.Row.Birthdate == nil {
		v.note(in, CategoryMissingBirthdates,
			"neither the row nor the roster record carries a birthdate")
		return
	}
	if in.Match.AthleteID != 0 {
		v.note(in, CategoryMissingBirthdates, "roster record carries no birthdate")
	}
}

func (v *Validator) checkDuplicate(in RowInput, verdict *Verdict) {
	if in.Match.AthleteID == 0 || in.EventID == "" {
		return
	}
	key := fmt.Sprintf("%d|%s|%s", in.Match.AthleteID, in.EventID, in.Row.Round)
	if prev, dup := v.seen[key]; dup {
		v.note(in, CategoryDuplicateAthletes,
			fmt.Sprintf("athlete already appears for this event/round at %s line %d", prev.Sheet, prev.Line))
		return
	}
	v.seen[key] = in.Row
}

func (v *Validator) note(in RowInput, cat Category, detail string) {
	v.report.Add(cat, Issue{
		Sheet:  in.Row.Sheet,
		Line:   in.Row.Line,
		Name:   in.Row.Name,
		Detail: detail,
	})
}

func (v *Validator) fail(in RowInput, verdict *Verdict, cat Category, detail string) {
	v.note(in, cat, detail)
	verdict.Admissible = false
	verdict.Fatal = append(verdict.Fatal, cat)
}
