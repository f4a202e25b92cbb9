package pipeline

import (
	"testing"
	"time"

	"swim-admin/feature/event"
	eventmodels "swim-admin/feature/event/models"
	"swim-admin/feature/ingest/match"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testParsed() *parser.Parsed {
	return &parser.Parsed{
		Meta: parser.MeetMeta{Name: "Nationals", Course: "LCM", Date: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)},
		Rows: []parser.Row{
			{Sheet: "Sheet1", Line: 8, Name: "TAN, Wei Ming", Birthdate: date(2010, 5, 2), Gender: "M",
				Distance: 50, Stroke: "Freestyle", Round: "FINAL", TimeText: "27.45", PlaceText: "1"},
			{Sheet: "Sheet1", Line: 9, Name: "WONG, Mei Ling", Birthdate: date(2011, 1, 1), Gender: "F",
				Distance: 50, Stroke: "Freestyle", Round: "FINAL", TimeText: "28.00", PlaceText: "2"},
			{Sheet: "Sheet1", Line: 12, Name: "Aquatic Club", Gender: "M",
				Distance: 100, Stroke: "Medley", Relay: true, Round: "FINAL", TimeText: "4:12.33", PlaceText: "1"},
		},
	}
}

func testSnapshot() *match.Snapshot {
	return match.NewSnapshot([]match.Entry{
		{ID: 1, Name: "TAN, Wei Ming", Birthdate: date(2010, 5, 2), Gender: "M"},
	}, map[string]uint{"Aquatic Club": 1})
}

func testResolver() *event.Resolver {
	return event.NewResolver([]eventmodels.SwimEvent{
		{ID: "LCM_IND_50_FR_M", Course: "LCM", Kind: eventmodels.KindIndividual, Distance: 50, Stroke: eventmodels.StrokeFreestyle, Gender: "M"},
		{ID: "LCM_RELAY_100_IM_M", Course: "LCM", Kind: eventmodels.KindRelay, Distance: 100, Stroke: eventmodels.StrokeMedley, Gender: "M"},
	})
}

func TestExecute(t *testing.T) {
	run := Execute(testParsed(), testSnapshot(), testResolver(), validate.Config{})

	require.Len(t, run.Rows, 3)
	assert.Equal(t, "Nationals", run.Meta.Name)

	matched := run.Rows[0]
	assert.Equal(t, match.Matched, matched.Match.Kind)
	assert.Equal(t, "LCM_IND_50_FR_M", matched.EventID)
	assert.True(t, matched.Verdict.Admissible)

	// Unknown athlete and unknown event: the female 50 free is not in the
	// reference table, so both fatal categories fire for this row.
	unmatched := run.Rows[1]
	assert.Equal(t, match.Unmatched, unmatched.Match.Kind)
	assert.False(t, unmatched.Verdict.Admissible)
	assert.Contains(t, unmatched.Verdict.Fatal, validate.CategoryNameMismatches)
	assert.Contains(t, unmatched.Verdict.Fatal, validate.CategoryUnknownEvents)

	relay := run.Rows[2]
	assert.Equal(t, "LCM_RELAY_100_IM_M", relay.EventID)
	assert.True(t, relay.Verdict.Admissible)

	assert.Equal(t, 2, run.Admissible())
	assert.Equal(t, 1, run.Report.Count(validate.CategoryNameMismatches))
	assert.Equal(t, 1, run.Report.Count(validate.CategoryUnknownEvents))
}

func TestExecuteIsDeterministic(t *testing.T) {
	snapshot := testSnapshot()
	resolver := testResolver()

	first := Execute(testParsed(), snapshot, resolver, validate.Config{})
	second := Execute(testParsed(), snapshot, resolver, validate.Config{})

	require.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		assert.Equal(t, first.Rows[i].Match, second.Rows[i].Match)
		assert.Equal(t, first.Rows[i].EventID, second.Rows[i].EventID)
		assert.Equal(t, first.Rows[i].Verdict.Admissible, second.Rows[i].Verdict.Admissible)
	}
}
