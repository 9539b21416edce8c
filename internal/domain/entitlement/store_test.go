package entitlement

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return db
}

func TestStoreGetMissIsNotAnError(t *testing.T) {
	store := NewStore(newTestDB(t))

	rec, err := store.Get("u1")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestStorePutThenGet(t *testing.T) {
	store := NewStore(newTestDB(t))

	trialEnd := time.Now().Add(14 * 24 * time.Hour).Truncate(time.Second)
	require.NoError(t, store.Put("u1", PlanPro, &trialEnd))

	rec, err := store.Get("u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, PlanPro, rec.Plan)
	require.NotNil(t, rec.TrialEndsAt)
	require.Equal(t, trialEnd.Unix(), rec.TrialEndsAt.Unix())
}

func TestStorePutOverwritesLastWriteWins(t *testing.T) {
	store := NewStore(newTestDB(t))

	trialEnd := time.Now().Add(time.Hour)
	require.NoError(t, store.Put("u1", PlanTrial, &trialEnd))
	require.NoError(t, store.Put("u1", PlanFree, nil))

	rec, err := store.Get("u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	require.Equal(t, PlanFree, rec.Plan)
	require.Nil(t, rec.TrialEndsAt)
}

func TestStorePutRejectsInvalidPlan(t *testing.T) {
	store := NewStore(newTestDB(t))

	err := store.Put("u1", Plan("platinum"), nil)
	require.Error(t, err)

	rec, err := store.Get("u1")
	require.NoError(t, err)
	require.Nil(t, rec)
}

func TestStoreClear(t *testing.T) {
	store := NewStore(newTestDB(t))

	require.NoError(t, store.Put("u1", PlanPremium, nil))
	require.NoError(t, store.Clear("u1"))

	rec, err := store.Get("u1")
	require.NoError(t, err)
	require.Nil(t, rec)

	// Clearing an absent record is a no-op, not a failure.
	require.NoError(t, store.Clear("u1"))
}

func TestParsePlan(t *testing.T) {
	for _, valid := range []string{"free", "trial", "essential", "pro", "premium"} {
		p, ok := ParsePlan(valid)
		require.True(t, ok, valid)
		require.Equal(t, Plan(valid), p)
	}

	for _, invalid := range []string{"", "Pro", "gold", "FREE "} {
		_, ok := ParsePlan(invalid)
		require.False(t, ok, invalid)
	}
}
