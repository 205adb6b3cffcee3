package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
)

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", sqliteDSN(""))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:"))
	assert.Equal(t, "devempire.db?_busy_timeout=5000", sqliteDSN("devempire.db"))
	assert.Equal(t, "devempire.db?cache=shared&_busy_timeout=5000", sqliteDSN("devempire.db?cache=shared"))
}

func TestPostgresDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{Host: "db", Port: 5432, User: "dev", Password: "pw", Name: "empire", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=dev password=pw dbname=empire sslmode=disable", postgresDSN(cfg))

	cfg.URL = "postgresql://dev:pw@db/empire"
	assert.Equal(t, "postgresql://dev:pw@db/empire", postgresDSN(cfg))
}

func TestNewTestConnection_Migrates(t *testing.T) {
	// Act
	db, err := NewTestConnection()
	require.NoError(t, err)
	defer Close(db)

	// Assert
	assert.True(t, db.Migrator().HasTable("snapshots"))
	assert.True(t, db.Migrator().HasTable("transactions"))
}

func TestNewConnection_SqliteFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "save.db")

	// Act
	db, err := NewConnection(&config.DatabaseConfig{Type: "sqlite", Path: path})
	require.NoError(t, err)
	defer Close(db)

	// Assert
	require.NoError(t, AutoMigrate(db))
	assert.FileExists(t, path)
}

func TestNewConnection_UnknownType(t *testing.T) {
	_, err := NewConnection(&config.DatabaseConfig{Type: "mysql"})
	assert.ErrorContains(t, err, "unsupported database type")
}
