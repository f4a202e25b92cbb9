package event

import (
	"fmt"
	"strings"

	"swim-admin/feature/event/models"
)

// UnknownEventError reports an event lookup that resolved to an identifier
// with no reference row. The resolver never invents events; an unresolved
// event becomes a validation issue downstream.
type UnknownEventError struct {
	ID string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event %s", e.ID)
}

// NormalizeStroke maps a raw stroke token from a source sheet onto the
// canonical stroke code. Relay tokens are restricted to freestyle and
// medley.
func NormalizeStroke(token string, relay bool) (string, error) {
	t := strings.ToUpper(strings.Join(strings.Fields(token), " "))
	t = strings.TrimSuffix(t, ".")

	if relay {
		switch t {
		case "FR", "FREE", "FREESTYLE":
			return models.StrokeFreestyle, nil
		case "IM", "MEDLEY":
			return models.StrokeMedley, nil
		default:
			return "", fmt.Errorf("unknown relay stroke token %q", token)
		}
	}

	switch t {
	case "FR", "FREE", "FREESTYLE":
		return models.StrokeFreestyle, nil
	case "BK", "BACK", "BACKSTROKE":
		return models.StrokeBackstroke, nil
	case "BR", "BREAST", "BREASTSTROKE":
		return models.StrokeBreaststroke, nil
	case "BF", "FLY", "BUTTERFLY":
		return models.StrokeButterfly, nil
	case "IM", "MEDLEY", "INDIVIDUAL MEDLEY":
		return models.StrokeMedley, nil
	default:
		return "", fmt.Errorf("unknown stroke token %q", token)
	}
}

// Resolver resolves raw event descriptors against a fixed set of reference
// events. It is built once per ingestion run so every row of a file sees
// the same event table state.
type Resolver struct {
	known map[string]models.SwimEvent
}

// NewResolver indexes the reference events.
func NewResolver(events []models.SwimEvent) *Resolver {
	known := make(map[string]models.SwimEvent, len(events))
	for _, e := range events {
		known[e.ID] = e
	}
	return &Resolver{known: known}
}

// Resolve maps (course, distance, stroke token, gender, relay flag) to the
// canonical event identifier.
func (r *Resolver) Resolve(course string, distance int, strokeToken, gender string, relay bool) (string, error) {
	stroke, err := NormalizeStroke(strokeToken, relay)
	if err != nil {
		return "", err
	}
	kind := models.KindIndividual
	if relay {
		kind = models.KindRelay
	}
	id := models.ComposeID(course, kind, distance, stroke, gender)
	if _, ok := r.known[id]; !ok {
		return "", &UnknownEventError{ID: id}
	}
	return id, nil
}

// Lookup returns the reference event for an identifier.
func (r *Resolver) Lookup(id string) (models.SwimEvent, bool) {
	e, ok := r.known[id]
	return e, ok
}

// LeadoffEquivalent returns the individual event a relay leadoff split
// corresponds to: same course, gender and leg distance, with the stroke the
// first leg swims (backstroke for medley relays).
func (r *Resolver) LeadoffEquivalent(relayID string) (string, error) {
	relay, ok := r.known[relayID]
	if !ok || relay.Kind != models.KindRelay {
		return "", &UnknownEventError{ID: relayID}
	}
	stroke := relay.Stroke
	if stroke == models.StrokeMedley {
		stroke = models.StrokeBackstroke
	}
	id := models.ComposeID(relay.Course, models.KindIndividual, relay.Distance, stroke, relay.Gender)
	if _, ok := r.known[id]; !ok {
		return "", &UnknownEventError{ID: id}
	}
	return id, nil
}
