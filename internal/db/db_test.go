package db

import (
	"path/filepath"
	"testing"

	"event_management/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	cfg := &config.Config{DBUser: "app", DBPassword: "secret", DBHost: "db", DBPort: "3306", DBName: "events", DBSSLMode: "disable", DBPath: "/tmp/events.db"}

	cfg.DBDriver = "mysql"
	dsn, err := DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "app:secret@tcp(db:3306)/events?parseTime=true", dsn)

	cfg.DBDriver = "postgres"
	cfg.DBPort = "5432"
	dsn, err = DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=events sslmode=disable", dsn)

	cfg.DBDriver = "sqlite"
	dsn, err = DSN(cfg)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/events.db?_pragma=foreign_keys(1)", dsn)

	cfg.DBDriver = "oracle"
	_, err = DSN(cfg)
	assert.Error(t, err)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "migrate.db")}
	gdb, err := Open(cfg)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(gdb))
	for _, table := range []string{"users", "categories", "events", "event_categories", "registrations", "bookings", "payments"} {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}
