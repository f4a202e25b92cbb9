package models

import "fmt"

// Event kinds.
const (
	KindIndividual = "IND"
	KindRelay      = "RELAY"
)

// Canonical stroke codes. Relay events use StrokeFreestyle or StrokeMedley.
const (
	StrokeFreestyle    = "FR"
	StrokeBackstroke   = "BK"
	StrokeBreaststroke = "BR"
	StrokeButterfly    = "BF"
	StrokeMedley       = "IM"
)

// SwimEvent is immutable reference data describing one canonical event.
// The identifier is fully derived from the remaining fields; editing an
// event re-derives it.
type SwimEvent struct {
	ID       string `gorm:"primaryKey;type:varchar(40)" json:"id"`
	Course   string `gorm:"type:varchar(3)" json:"course"`
	Kind     string `gorm:"type:varchar(5)" json:"kind"`
	Distance int    `json:"distance"`
	Stroke   string `gorm:"type:varchar(2)" json:"stroke"`
	Gender   string `gorm:"type:varchar(1)" json:"gender"`
}

// TableName overrides the default pluralized name.
func (SwimEvent) TableName() string {
	return "events"
}

// Validate checks the fields against the closed vocabularies the
// identifier derives from. Edits must not compose identifiers from
// values outside them.
func (e SwimEvent) Validate() error {
	switch e.Course {
	case "LCM", "SCM":
	default:
		return fmt.Errorf("course %q must be LCM or SCM", e.Course)
	}
	switch e.Kind {
	case KindIndividual, KindRelay:
	default:
		return fmt.Errorf("kind %q must be %s or %s", e.Kind, KindIndividual, KindRelay)
	}
	if e.Distance <= 0 {
		return fmt.Errorf("distance %d must be positive", e.Distance)
	}
	switch e.Stroke {
	case StrokeFreestyle, StrokeMedley:
	case StrokeBackstroke, StrokeBreaststroke, StrokeButterfly:
		if e.Kind == KindRelay {
			return fmt.Errorf("relay events swim %s or %s, not %s", StrokeFreestyle, StrokeMedley, e.Stroke)
		}
	default:
		return fmt.Errorf("unknown stroke code %q", e.Stroke)
	}
	switch e.Gender {
	case "M", "F", "X":
	default:
		return fmt.Errorf("gender %q must be M, F or X", e.Gender)
	}
	return nil
}

// ComposeID builds the canonical event identifier
// {course}_{kind}_{distance}_{stroke}_{gender}, e.g. LCM_IND_50_FR_M.
func ComposeID(course, kind string, distance int, stroke, gender string) string {
	return fmt.Sprintf("%s_%s_%d_%s_%s", course, kind, distance, stroke, gender)
}

// DeriveID returns the identifier the event's current fields imply.
func (e SwimEvent) DeriveID() string {
	return ComposeID(e.Course, e.Kind, e.Distance, e.Stroke, e.Gender)
}
