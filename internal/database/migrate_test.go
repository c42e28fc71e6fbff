package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbeddedInOrder(t *testing.T) {
	migrations, err := Migrations()
	require.NoError(t, err)

	ids := make([]string, 0, len(migrations))
	for _, m := range migrations {
		ids = append(ids, m.ID)
		assert.NotEmpty(t, m.SQL, m.ID)
	}
	assert.Equal(t, []string{"0001_user_profiles", "0002_food_items", "0003_daily_logs"}, ids)
}

func TestLoadMigrations_SkipsNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"m/0002_b.sql": {Data: []byte("SELECT 2")},
		"m/0001_a.sql": {Data: []byte("SELECT 1")},
		"m/README.md":  {Data: []byte("notes")},
		"m/sub/x.sql":  {Data: []byte("SELECT 3")},
	}

	migrations, err := loadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, Migration{ID: "0001_a", SQL: "SELECT 1"}, migrations[0])
	assert.Equal(t, "0002_b", migrations[1].ID)
}

func TestConfig_ConnectionString(t *testing.T) {
	cfg := Config{
		Host:     "db",
		Port:     5433,
		User:     "app",
		Password: "secret",
		Database: "nutrition",
		SSLMode:  "require",
	}
	assert.Equal(t, "postgres://app:secret@db:5433/nutrition?sslmode=require", cfg.ConnectionString())
}
