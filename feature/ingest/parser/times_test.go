package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	t.Run("SecondsOnly", func(t *testing.T) {
		ms, err := ParseTime("27.45")
		assert.NoError(t, err)
		assert.Equal(t, 27450, ms)
	})

	t.Run("MinutesSecondsCentiseconds", func(t *testing.T) {
		ms, err := ParseTime("1:02.34")
		assert.NoError(t, err)
		assert.Equal(t, 62340, ms)
	})

	t.Run("HoursMinutesSeconds", func(t *testing.T) {
		ms, err := ParseTime("1:02:03.45")
		assert.NoError(t, err)
		assert.Equal(t, 3723450, ms)
	})

	t.Run("MillisecondFraction", func(t *testing.T) {
		ms, err := ParseTime("27.456")
		assert.NoError(t, err)
		assert.Equal(t, 27456, ms)
	})

	t.Run("SingleFractionDigit", func(t *testing.T) {
		ms, err := ParseTime("27.4")
		assert.NoError(t, err)
		assert.Equal(t, 27400, ms)
	})

	t.Run("Invalid", func(t *testing.T) {
		for _, input := range []string{
			"",
			"abc",
			"1:2.345",   // seconds must be two digits once minutes appear
			"27.4567",   // fraction too long
			"1:62.34",   // seconds overflow
			"-27.45",
			"27,45",
		} {
			_, err := ParseTime(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "27.45", FormatTime(27450))
	assert.Equal(t, "1:02.34", FormatTime(62340))
	assert.Equal(t, "1:02:03.45", FormatTime(3723450))
	// Truncates to centiseconds rather than rounding up.
	assert.Equal(t, "27.45", FormatTime(27456))
}
