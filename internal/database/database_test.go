package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/trip-planner-api/internal/config"
	"github.com/yukikurage/trip-planner-api/internal/models"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DatabaseURL: ":memory:", GinMode: "test"}

	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })

	require.NoError(t, MigrateDatabase(db))
	// second run is a no-op
	require.NoError(t, MigrateDatabase(db))

	for _, idx := range indexes {
		assert.True(t, db.Migrator().HasIndex(idx.model, idx.name), idx.name)
	}
	assert.True(t, db.Migrator().HasTable(&models.PointOfInterest{}))
}

func TestDialector_UnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestDialector_Drivers(t *testing.T) {
	for _, driver := range []string{"mysql", "postgres", "sqlite"} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "x", DBHost: "h"})
		require.NoError(t, err)
		assert.Equal(t, driver, d.Name())
	}
}
