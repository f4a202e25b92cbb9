package match

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

func testSnapshot() *Snapshot {
	entries := []Entry{
		{ID: 1, Name: "TAN, Wei Ming", Birthdate: date(2010, 5, 2), Gender: "M"},
		{ID: 2, Name: "LIM, Jun Hao", Birthdate: date(2009, 1, 15), Gender: "M"},
		{ID: 3, Name: "ONG, Li Wen", Birthdate: date(2011, 8, 30), Gender: "F"},
		{ID: 4, Name: "ONG, Li Wei", Birthdate: date(2011, 8, 30), Gender: "F"},
	}
	clubs := map[string]uint{"Aquatic Club": 1, "Marlins": 2}
	return NewSnapshot(entries, clubs)
}

func TestNormalizeName(t *testing.T) {
	// Token sorting folds "LAST, First" and "First Last" together.
	assert.Equal(t, NormalizeName("TAN, Wei Ming"), NormalizeName("Wei Ming TAN"))
	assert.Equal(t, "MING TAN WEI", NormalizeName("tan,  wei   ming"))
	assert.NotEqual(t, NormalizeName("TAN, Wei Ming"), NormalizeName("TAN, Wei Min"))
}

func TestSnapshotClassify(t *testing.T) {
	s := testSnapshot()

	t.Run("ExactMatch", func(t *testing.T) {
		c := s.Classify("TAN, Wei Ming", date(2010, 5, 2), "M", "Aquatic Club", 0)
		assert.Equal(t, Matched, c.Kind)
		assert.Equal(t, uint(1), c.AthleteID)
		assert.Equal(t, 1.0, c.Similarity)
	})

	t.Run("ReorderedNameStillExact", func(t *testing.T) {
		c := s.Classify("Wei Ming TAN", date(2010, 5, 2), "M", "Aquatic Club", 0)
		assert.Equal(t, Matched, c.Kind)
		assert.Equal(t, uint(1), c.AthleteID)
	})

	t.Run("FuzzyNameMismatch", func(t *testing.T) {
		c := s.Classify("TAN, Wei Min", date(2010, 5, 2), "M", "Aquatic Club", 0)
		assert.Equal(t, NameMismatch, c.Kind)
		assert.Equal(t, uint(1), c.AthleteID)
		assert.GreaterOrEqual(t, c.Similarity, DefaultThreshold)
	})

	t.Run("ClubMiss", func(t *testing.T) {
		c := s.Classify("TAN, Wei Ming", date(2010, 5, 2), "M", "Sharks", 0)
		assert.Equal(t, ClubMiss, c.Kind)
		assert.Equal(t, uint(1), c.AthleteID)
	})

	t.Run("EmptyClubIsNotAMiss", func(t *testing.T) {
		c := s.Classify("TAN, Wei Ming", date(2010, 5, 2), "M", "", 0)
		assert.Equal(t, Matched, c.Kind)
	})

	t.Run("Unmatched", func(t *testing.T) {
		c := s.Classify("WONG, Mei Ling", date(2012, 3, 3), "F", "Marlins", 0)
		assert.Equal(t, Unmatched, c.Kind)
		assert.Zero(t, c.AthleteID)
	})

	t.Run("BirthdateRestrictsFuzzy", func(t *testing.T) {
		// Right name, wrong birthdate: the fuzzy fallback never crosses
		// birthdates when the row carries one.
		c := s.Classify("TAN, Wei Min", date(2008, 1, 1), "M", "", 0)
		assert.Equal(t, Unmatched, c.Kind)
	})

	t.Run("NilRosterBirthdateStaysEligible", func(t *testing.T) {
		s := NewSnapshot([]Entry{
			{ID: 9, Name: "KOH, Zhi Hao", Gender: "M"},
		}, nil)

		// The roster record lacks a birthdate; a date-bearing row with the
		// exact name still matches instead of falling through to Unmatched.
		c := s.Classify("KOH, Zhi Hao", date(2010, 5, 2), "M", "", 0)
		assert.Equal(t, Matched, c.Kind)
		assert.Equal(t, uint(9), c.AthleteID)
	})

	t.Run("GenderRestrictsFuzzy", func(t *testing.T) {
		c := s.Classify("TAN, Wei Min", date(2010, 5, 2), "F", "", 0)
		assert.Equal(t, Unmatched, c.Kind)
	})

	t.Run("TieBreaksOnLowerID", func(t *testing.T) {
		// "ONG, Li We" is equally close to athletes 3 and 4.
		c := s.Classify("ONG, Li We", date(2011, 8, 30), "F", "", 0)
		assert.Equal(t, NameMismatch, c.Kind)
		assert.Equal(t, uint(3), c.AthleteID)
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := s.Classify("TAN, Wei Min", date(2010, 5, 2), "M", "Marlins", 0)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, s.Classify("TAN, Wei Min", date(2010, 5, 2), "M", "Marlins", 0))
		}
	})

	t.Run("ThresholdIsRespected", func(t *testing.T) {
		strict := s.Classify("TAN, Wei Min", date(2010, 5, 2), "M", "", 0.999)
		assert.Equal(t, Unmatched, strict.Kind)
	})
}

func TestSnapshotBirthdate(t *testing.T) {
	s := testSnapshot()
	assert.Equal(t, date(2009, 1, 15), s.Birthdate(2))
	assert.Nil(t, s.Birthdate(99))
	assert.Nil(t, s.Birthdate(0))
}

func TestResolveClub(t *testing.T) {
	s := testSnapshot()

	id, ok := s.ResolveClub("Aquatic Club")
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	// Case and spacing variations resolve to the same club.
	id, ok = s.ResolveClub("  aquatic  club ")
	assert.True(t, ok)
	assert.Equal(t, uint(1), id)

	_, ok = s.ResolveClub("Sharks")
	assert.False(t, ok)
}
