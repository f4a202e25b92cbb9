package results

import (
	"context"
	"testing"

	"swim-admin/feature/event"
	eventmodels "swim-admin/feature/event/models"
	meetmodels "swim-admin/feature/meet/models"
	rostermodels "swim-admin/feature/roster/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&rostermodels.Club{},
		&rostermodels.Athlete{},
		&eventmodels.SwimEvent{},
		&meetmodels.Meet{},
		&meetmodels.Result{},
		&meetmodels.RelaySplit{},
	))

	require.NoError(t, db.Create(&[]eventmodels.SwimEvent{
		{ID: "LCM_IND_50_FR_M", Course: "LCM", Kind: eventmodels.KindIndividual, Distance: 50, Stroke: eventmodels.StrokeFreestyle, Gender: "M"},
		{ID: "LCM_IND_100_BK_F", Course: "LCM", Kind: eventmodels.KindIndividual, Distance: 100, Stroke: eventmodels.StrokeBackstroke, Gender: "F"},
		{ID: "LCM_RELAY_100_IM_F", Course: "LCM", Kind: eventmodels.KindRelay, Distance: 100, Stroke: eventmodels.StrokeMedley, Gender: "F"},
	}).Error)

	require.NoError(t, db.Create(&[]rostermodels.Athlete{
		{ID: 5, FullName: "TAN, Wei Ming", Gender: "M"},
		{ID: 6, FullName: "LIM, Jun Hao", Gender: "M"},
		{ID: 7, FullName: "NG, Kai Xuan", Gender: "M"},
		{ID: 11, FullName: "ONG, Li Wen", Gender: "F"},
		{ID: 12, FullName: "WONG, Mei Ling", Gender: "F"},
		{ID: 13, FullName: "LEE, Hui Min", Gender: "F"},
		{ID: 14, FullName: "CHUA, Jia Yi", Gender: "F"},
	}).Error)

	logg := zap.NewNop()
	return db, NewService(db, event.NewService(db, logg), logg)
}

func seedMeet(t *testing.T, db *gorm.DB) meetmodels.Meet {
	t.Helper()
	meet := meetmodels.Meet{Name: "Nationals", Course: "LCM"}
	require.NoError(t, db.Create(&meet).Error)
	return meet
}

func TestUpdateCompPlaces(t *testing.T) {
	db, svc := setupService(t)
	meet := seedMeet(t, db)

	athleteID := uint(7)
	result := meetmodels.Result{MeetID: meet.ID, EventID: "LCM_IND_50_FR_M", Round: "FINAL", AthleteID: &athleteID}
	require.NoError(t, db.Create(&result).Error)

	outcome, err := svc.UpdateCompPlaces(context.Background(), []CompPlaceUpdate{
		{ResultID: result.ID, Value: "2"},
		{ResultID: result.ID, Value: "banana"},
		{ResultID: 9999, Value: "1"},
	})
	require.NoError(t, err)

	// One good edit applied; the invalid value and the missing row are
	// rejected individually without failing the batch.
	assert.Equal(t, 1, outcome.Updated)
	require.Len(t, outcome.Rejected, 2)

	var stored meetmodels.Result
	require.NoError(t, db.First(&stored, result.ID).Error)
	require.NotNil(t, stored.CompPlace)
	assert.Equal(t, "2", *stored.CompPlace)

	t.Run("StatusCodeValue", func(t *testing.T) {
		outcome, err := svc.UpdateCompPlaces(context.Background(), []CompPlaceUpdate{
			{ResultID: result.ID, Value: "dsq"},
		})
		require.NoError(t, err)
		assert.Len(t, outcome.Rejected, 1, "dsq is not in the status vocabulary")

		outcome, err = svc.UpdateCompPlaces(context.Background(), []CompPlaceUpdate{
			{ResultID: result.ID, Value: "DQ"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.Updated)
	})

	t.Run("EmptyClearsField", func(t *testing.T) {
		outcome, err := svc.UpdateCompPlaces(context.Background(), []CompPlaceUpdate{
			{ResultID: result.ID, Value: ""},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, outcome.Updated)

		var stored meetmodels.Result
		require.NoError(t, db.First(&stored, result.ID).Error)
		assert.Nil(t, stored.CompPlace)
	})
}

func relayInput(meetID uint) RelaySplitsInput {
	return RelaySplitsInput{
		MeetID:  meetID,
		EventID: "LCM_RELAY_100_IM_F",
		Round:   "FINAL",
		Team:    "Aquatic Club",
		Place:   "1",
		Legs: []RelayLeg{
			{AthleteID: 11, Split: "1:05.20"},
			{AthleteID: 12, Split: "1:04.80"},
			{AthleteID: 13, Split: "1:03.10"},
			{AthleteID: 14, Split: "1:01.90"},
		},
	}
}

func TestSaveRelaySplits(t *testing.T) {
	ctx := context.Background()

	t.Run("SaveAndPropagateLeadoff", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		outcome, err := svc.SaveRelaySplits(ctx, relayInput(meet.ID))
		require.NoError(t, err)
		assert.Equal(t, 4, outcome.Legs)
		assert.Equal(t, "LCM_IND_100_BK_F", outcome.LeadoffEventID)

		var relay meetmodels.Result
		require.NoError(t, db.First(&relay, outcome.ResultID).Error)
		require.NotNil(t, relay.TimeMS)
		assert.Equal(t, 65200+64800+63100+61900, *relay.TimeMS)

		var splits []meetmodels.RelaySplit
		require.NoError(t, db.Where("result_id = ?", outcome.ResultID).Order("leg").Find(&splits).Error)
		require.Len(t, splits, 4)
		assert.Equal(t, uint(11), splits[0].AthleteID)
		assert.Equal(t, 65200, splits[0].SplitMS)

		// Medley relay leads off backstroke; the leg-1 split becomes an
		// individual backstroke result.
		var leadoff meetmodels.Result
		require.NoError(t, db.First(&leadoff, outcome.LeadoffResultID).Error)
		assert.Equal(t, "LCM_IND_100_BK_F", leadoff.EventID)
		require.NotNil(t, leadoff.AthleteID)
		assert.Equal(t, uint(11), *leadoff.AthleteID)
		require.NotNil(t, leadoff.TimeMS)
		assert.Equal(t, 65200, *leadoff.TimeMS)
	})

	t.Run("ResaveIsIdempotent", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		first, err := svc.SaveRelaySplits(ctx, relayInput(meet.ID))
		require.NoError(t, err)

		in := relayInput(meet.ID)
		in.Legs[0].Split = "1:05.00"
		second, err := svc.SaveRelaySplits(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, first.ResultID, second.ResultID)
		assert.Equal(t, first.LeadoffResultID, second.LeadoffResultID)

		var results, splits int64
		require.NoError(t, db.Model(&meetmodels.Result{}).Count(&results).Error)
		require.NoError(t, db.Model(&meetmodels.RelaySplit{}).Count(&splits).Error)
		assert.EqualValues(t, 2, results, "one relay result and one leadoff result")
		assert.EqualValues(t, 4, splits)

		var leadoff meetmodels.Result
		require.NoError(t, db.First(&leadoff, second.LeadoffResultID).Error)
		require.NotNil(t, leadoff.TimeMS)
		assert.Equal(t, 65000, *leadoff.TimeMS)
	})

	t.Run("NotARelayEvent", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		in := relayInput(meet.ID)
		in.EventID = "LCM_IND_50_FR_M"
		_, err := svc.SaveRelaySplits(ctx, in)
		assert.Error(t, err)
	})

	t.Run("BadSplitTime", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		in := relayInput(meet.ID)
		in.Legs[2].Split = "not a time"
		_, err := svc.SaveRelaySplits(ctx, in)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "leg 3")

		var results int64
		require.NoError(t, db.Model(&meetmodels.Result{}).Count(&results).Error)
		assert.Zero(t, results, "nothing is written when a leg fails validation")
	})
}

func TestSaveManual(t *testing.T) {
	ctx := context.Background()

	t.Run("SavesPrelimAndFinal", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		outcome, err := svc.SaveManual(ctx, ManualInput{
			MeetID: meet.ID,
			Rows: []ManualRow{
				{AthleteID: 5, EventID: "LCM_IND_50_FR_M", Prelim: "28.01", Final: "27.45"},
				{AthleteID: 6, EventID: "LCM_IND_50_FR_M", Final: "27.80"},
				{AthleteID: 7, EventID: "LCM_IND_50_FR_M"}, // both empty: dropped
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, outcome.Saved)
		assert.Equal(t, 1, outcome.Dropped)
		assert.Empty(t, outcome.Rejected)

		var results int64
		require.NoError(t, db.Model(&meetmodels.Result{}).Count(&results).Error)
		assert.EqualValues(t, 3, results)

		var prelim meetmodels.Result
		require.NoError(t, db.Where("athlete_id = ? AND round = ?", 5, "PRELIM").First(&prelim).Error)
		require.NotNil(t, prelim.TimeMS)
		assert.Equal(t, 28010, *prelim.TimeMS)
	})

	t.Run("RejectsBadRowsIndividually", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		outcome, err := svc.SaveManual(ctx, ManualInput{
			MeetID: meet.ID,
			Rows: []ManualRow{
				{AthleteID: 5, EventID: "LCM_IND_50_FR_M", Final: "27.45"},
				{AthleteID: 6, EventID: "LCM_IND_50_FR_M", Final: "nope"},
				{AthleteID: 7, EventID: "LCM_IND_999_FR_M", Final: "27.45"},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, 1, outcome.Saved)
		assert.Len(t, outcome.Rejected, 2)
	})

	t.Run("RejectsAthleteNotOnRoster", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		outcome, err := svc.SaveManual(ctx, ManualInput{
			MeetID: meet.ID,
			Rows: []ManualRow{
				{AthleteID: 9999, EventID: "LCM_IND_50_FR_M", Final: "27.45"},
			},
		})
		require.NoError(t, err)

		assert.Zero(t, outcome.Saved)
		require.Len(t, outcome.Rejected, 1)
		assert.Contains(t, outcome.Rejected[0].Reason, "not on the roster")

		var results int64
		require.NoError(t, db.Model(&meetmodels.Result{}).Count(&results).Error)
		assert.Zero(t, results, "no orphan result is stored")
	})

	t.Run("ResaveUpdatesInPlace", func(t *testing.T) {
		db, svc := setupService(t)
		meet := seedMeet(t, db)

		in := ManualInput{MeetID: meet.ID, Rows: []ManualRow{
			{AthleteID: 5, EventID: "LCM_IND_50_FR_M", Final: "27.45"},
		}}
		_, err := svc.SaveManual(ctx, in)
		require.NoError(t, err)

		in.Rows[0].Final = "27.30"
		_, err = svc.SaveManual(ctx, in)
		require.NoError(t, err)

		var results int64
		require.NoError(t, db.Model(&meetmodels.Result{}).Count(&results).Error)
		assert.EqualValues(t, 1, results)

		var stored meetmodels.Result
		require.NoError(t, db.Where("athlete_id = ?", 5).First(&stored).Error)
		require.NotNil(t, stored.TimeMS)
		assert.Equal(t, 27300, *stored.TimeMS)
	})
}

func TestForMeet(t *testing.T) {
	db, svc := setupService(t)
	meet := seedMeet(t, db)
	other := meetmodels.Meet{Name: "Invitational", Course: "SCM"}
	require.NoError(t, db.Create(&other).Error)

	athleteID := uint(5)
	require.NoError(t, db.Create(&meetmodels.Result{
		MeetID: meet.ID, EventID: "LCM_IND_50_FR_M", Round: "FINAL", AthleteID: &athleteID,
	}).Error)
	require.NoError(t, db.Create(&meetmodels.Result{
		MeetID: other.ID, EventID: "LCM_IND_50_FR_M", Round: "FINAL", AthleteID: &athleteID,
	}).Error)

	results, err := svc.ForMeet(context.Background(), meet.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, meet.ID, results[0].MeetID)
}
