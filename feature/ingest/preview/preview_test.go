package preview

import (
	"bytes"
	"testing"

	"swim-admin/feature/ingest/match"
	"swim-admin/feature/ingest/parser"
	"swim-admin/feature/ingest/pipeline"
	"swim-admin/feature/ingest/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testRun() *pipeline.Run {
	return &pipeline.Run{
		Meta: parser.MeetMeta{Name: "National Championships", Course: "LCM"},
		Rows: []pipeline.Row{
			{
				Raw:     parser.Row{Sheet: "Sheet1", Line: 8, Name: "TAN, Wei Ming", Round: "FINAL", TimeText: "27.45"},
				Match:   match.Classification{Kind: match.Matched, AthleteID: 1},
				EventID: "LCM_IND_50_FR_M",
				Verdict: validate.Verdict{Admissible: true, Status: "OK"},
			},
			{
				Raw:     parser.Row{Sheet: "Sheet1", Line: 9, Name: "WONG, Mei Ling", Round: "FINAL", TimeText: "27.90"},
				Match:   match.Classification{Kind: match.Unmatched},
				Verdict: validate.Verdict{Fatal: []validate.Category{validate.CategoryNameMismatches}},
			},
			{
				Raw:     parser.Row{Sheet: "Sheet1", Line: 14, Name: "Aquatic Club", Round: "FINAL", Relay: true, TimeText: "4:12.33"},
				EventID: "LCM_RELAY_100_IM_F",
				Verdict: validate.Verdict{Admissible: true, Status: "OK"},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	rendered, summary, err := Generate(testRun())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Matched)
	assert.Equal(t, 1, summary.Unmatched)

	f, err := excelize.OpenReader(bytes.NewReader(rendered))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Preview")
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Sheet", rows[0][0])

	matched := rows[1]
	assert.Equal(t, "TAN, Wei Ming", matched[2])
	assert.Contains(t, matched, "MATCHED")

	unmatched := rows[2]
	assert.Equal(t, "WONG, Mei Ling", unmatched[2])
	assert.Contains(t, unmatched, "UNMATCHED")
	// The unresolved event renders as a placeholder, and the fatal
	// category lands in the issues column.
	assert.Contains(t, unmatched, "?")
	assert.Contains(t, unmatched, string(validate.CategoryNameMismatches))

	relay := rows[3]
	assert.Contains(t, relay, "RELAY")
}

func TestGenerateEmptyRun(t *testing.T) {
	rendered, summary, err := Generate(&pipeline.Run{})
	require.NoError(t, err)
	assert.Zero(t, summary.Total)

	f, err := excelize.OpenReader(bytes.NewReader(rendered))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Preview")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
