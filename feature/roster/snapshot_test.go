package roster

import (
	"context"
	"testing"
	"time"

	eventmodels "swim-admin/feature/event/models"
	meetmodels "swim-admin/feature/meet/models"
	"swim-admin/feature/roster/models"

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
		&models.Club{},
		&models.Athlete{},
		&eventmodels.SwimEvent{},
		&meetmodels.Meet{},
		&meetmodels.Result{},
		&meetmodels.RelaySplit{},
	))

	club := models.Club{Name: "Aquatic Club"}
	require.NoError(t, db.Create(&club).Error)
	birthdate := time.Date(2010, 5, 2, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&[]models.Athlete{
		{FullName: "TAN, Wei Ming", Birthdate: &birthdate, Gender: "M", ClubID: &club.ID},
		{FullName: "ONG, Li Wen", Gender: "F"},
	}).Error)

	return db, NewService(db, zap.NewNop())
}

func TestSearch(t *testing.T) {
	_, svc := setupService(t)

	athletes, err := svc.Search(context.Background(), "Tan", 10)
	require.NoError(t, err)
	require.Len(t, athletes, 1)
	assert.Equal(t, "TAN, Wei Ming", athletes[0].FullName)
	require.NotNil(t, athletes[0].Club)
	assert.Equal(t, "Aquatic Club", athletes[0].Club.Name)

	athletes, err = svc.Search(context.Background(), "Zzz", 10)
	require.NoError(t, err)
	assert.Empty(t, athletes)
}

func TestSnapshotProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("CachesWithinTTL", func(t *testing.T) {
		db, svc := setupService(t)
		provider := NewSnapshotProvider(svc, time.Minute)

		first, err := provider.Snapshot(ctx)
		require.NoError(t, err)

		// A roster change is invisible until the TTL expires or the cache
		// is invalidated.
		require.NoError(t, db.Create(&models.Athlete{FullName: "NEW, Athlete", Gender: "M"}).Error)

		second, err := provider.Snapshot(ctx)
		require.NoError(t, err)
		assert.Same(t, first, second)

		provider.Invalidate()
		third, err := provider.Snapshot(ctx)
		require.NoError(t, err)
		assert.NotSame(t, first, third)
	})

	t.Run("ZeroTTLRebuildsEveryCall", func(t *testing.T) {
		_, svc := setupService(t)
		provider := NewSnapshotProvider(svc, 0)

		first, err := provider.Snapshot(ctx)
		require.NoError(t, err)
		second, err := provider.Snapshot(ctx)
		require.NoError(t, err)
		assert.NotSame(t, first, second)
	})

	t.Run("SnapshotMatchesRoster", func(t *testing.T) {
		_, svc := setupService(t)
		provider := NewSnapshotProvider(svc, time.Minute)

		snapshot, err := provider.Snapshot(ctx)
		require.NoError(t, err)

		birthdate := time.Date(2010, 5, 2, 0, 0, 0, 0, time.UTC)
		c := snapshot.Classify("TAN, Wei Ming", &birthdate, "M", "Aquatic Club", 0)
		assert.Equal(t, "MATCHED", c.Kind.String())
	})
}
