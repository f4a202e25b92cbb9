package pipeline

import (
	"swim-admin/feature/event"
	"swim-admin/feature/ingest/match"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/validate"
)

// Row is one fully processed pipeline row: parsed, event-resolved, matched
// and validated.
type Row struct {
	Raw     parser.Row
	Match   match.Classification
	EventID string
	Verdict validate.Verdict
}

// Run is the pipeline output for one file. The same Run feeds both the
// preview generator and the committer, which keeps the two modes
// consistent.
type Run struct {
	Meta   parser.MeetMeta
	Rows   []Row
	Report *validate.Report
}

// Admissible counts the rows eligible for commit.
func (r *Run) Admissible() int {
	n := 0
	for _, row := range r.Rows {
		if row.Verdict.Admissible {
			n++
		}
	}
	return n
}

// Execute runs event resolution, athlete matching and validation over a
// parsed file. It is pure with respect to its inputs: the same parsed
// rows, roster snapshot and resolver always produce the same Run.
func Execute(parsed *parser.Parsed, snapshot *match.Snapshot, resolver *event.Resolver, cfg validate.Config) *Run {
	validator := validate.New(cfg)
	run := &Run{Meta: parsed.Meta}

	for _, raw := range parsed.Rows {
		row := Row{Raw: raw}

		eventID, eventErr := resolver.Resolve(parsed.Meta.Course, raw.Distance, raw.Stroke, raw.Gender, raw.Relay)
		row.EventID = eventID

		if !raw.Relay {
			row.Match = snapshot.Classify(raw.Name, raw.Birthdate, raw.Gender, raw.Club, cfg.NameThreshold)
		}

		row.Verdict = validator.Check(validate.RowInput{
			Row:             raw,
			Match:           row.Match,
			EventID:         eventID,
			EventErr:        eventErr,
			RosterBirthdate: snapshot.Birthdate(row.Match.AthleteID),
		})

		run.Rows = append(run.Rows, row)
	}

	run.Report = validator.Report()
	return run
}
