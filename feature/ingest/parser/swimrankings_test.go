package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook renders rows into an in-memory xlsx file.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func swimRankingsFixture(t *testing.T) []byte {
	return buildWorkbook(t, [][]any{
		{"Meet", "National Championships"},
		{"Date", "2024-03-15"},
		{"City", "Singapore"},
		{"Course", "LCM"},
		{},
		{"50m Freestyle Men - Final"},
		{"Place", "Name", "YB", "Club", "Time"},
		{"1", "TAN, Wei Ming", "2010-05-02", "Aquatic Club", "27.45"},
		{"2", "LIM, Jun Hao", "2009", "Marlins", "27.90"},
		{"DQ", "ONG, Kai", "2010-01-20", "Marlins", ""},
		{},
		{"4x100m Medley Relay Women"},
		{"Place", "Name", "YB", "Club", "Time"},
		{"1", "Aquatic Club", "", "Aquatic Club", "4:12.33"},
	})
}

func TestSwimRankingsParser(t *testing.T) {
	parser := &SwimRankingsParser{}

	t.Run("FullFile", func(t *testing.T) {
		parsed, err := parser.Parse(swimRankingsFixture(t))
		require.NoError(t, err)

		assert.Equal(t, "National Championships", parsed.Meta.Name)
		assert.Equal(t, "Singapore", parsed.Meta.City)
		assert.Equal(t, "LCM", parsed.Meta.Course)
		assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), parsed.Meta.Date)

		require.Len(t, parsed.Rows, 4)

		first := parsed.Rows[0]
		assert.Equal(t, "TAN, Wei Ming", first.Name)
		assert.Equal(t, "M", first.Gender)
		assert.Equal(t, 50, first.Distance)
		assert.Equal(t, "Freestyle", first.Stroke)
		assert.False(t, first.Relay)
		assert.Equal(t, "FINAL", first.Round)
		assert.Equal(t, "27.45", first.TimeText)
		assert.Equal(t, "1", first.PlaceText)
		require.NotNil(t, first.Birthdate)
		assert.Equal(t, time.Date(2010, 5, 2, 0, 0, 0, 0, time.UTC), *first.Birthdate)

		// A bare birth year is not a usable birthdate.
		assert.Nil(t, parsed.Rows[1].Birthdate)

		// Status code in the placing column, empty time.
		assert.Equal(t, "DQ", parsed.Rows[2].PlaceText)
		assert.Equal(t, "", parsed.Rows[2].TimeText)

		relay := parsed.Rows[3]
		assert.True(t, relay.Relay)
		assert.Equal(t, "F", relay.Gender)
		assert.Equal(t, 100, relay.Distance)
		assert.Equal(t, "Medley", relay.Stroke)
		assert.Equal(t, "Aquatic Club", relay.Name)
	})

	t.Run("MissingMetaHeader", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"Meet", "National Championships"},
			{"City", "Singapore"},
			{"50m Freestyle Men"},
			{"Place", "Name", "Club", "Time"},
			{"1", "TAN, Wei Ming", "Aquatic Club", "27.45"},
		})
		_, err := parser.Parse(data)
		var malformed *MalformedInputError
		assert.ErrorAs(t, err, &malformed)
		assert.Contains(t, err.Error(), "Date")
	})

	t.Run("MissingColumnHeader", func(t *testing.T) {
		data := buildWorkbook(t, [][]any{
			{"Meet", "National Championships"},
			{"Date", "2024-03-15"},
			{"Course", "LCM"},
			{"50m Freestyle Men"},
			{"Place", "Name", "Time"}, // no club column
			{"1", "TAN, Wei Ming", "27.45"},
		})
		_, err := parser.Parse(data)
		var malformed *MalformedInputError
		assert.ErrorAs(t, err, &malformed)
	})

	t.Run("NotASpreadsheet", func(t *testing.T) {
		_, err := parser.Parse([]byte("definitely not xlsx"))
		var malformed *MalformedInputError
		assert.ErrorAs(t, err, &malformed)
	})
}
