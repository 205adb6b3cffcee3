package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
)

const memoryPath = ":memory:"

// sqliteBusyTimeoutMS lets `devempire status` read the file while the game
// loop is autosaving instead of failing with SQLITE_BUSY
const sqliteBusyTimeoutMS = 5000

// NewConnection opens the store holding save slots and the ledger
func NewConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		maxConns  int
	)
	switch cfg.Type {
	case "postgres":
		dialector = postgres.Open(postgresDSN(cfg))
		maxConns = cfg.MaxConns
	case "sqlite":
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
		// Every new connection to :memory: opens an empty database
		if cfg.Path == "" || cfg.Path == memoryPath {
			maxConns = 1
		}
	default:
		return nil, fmt.Errorf("unsupported database type: %s", cfg.Type)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Type, err)
	}

	if maxConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get underlying db: %w", err)
		}
		sqlDB.SetMaxOpenConns(maxConns)
		sqlDB.SetMaxIdleConns(maxConns)
	}

	return db, nil
}

func postgresDSN(cfg *config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

func sqliteDSN(path string) string {
	if path == "" || path == memoryPath {
		return memoryPath
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_busy_timeout=%d", path, sep, sqliteBusyTimeoutMS)
}

// NewTestConnection opens a migrated in-memory game database
func NewTestConnection() (*gorm.DB, error) {
	db, err := NewConnection(&config.DatabaseConfig{Type: "sqlite", Path: memoryPath})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}
	return db, nil
}

// AutoMigrate creates or updates the snapshot and ledger tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&persistence.SnapshotModel{},
		&persistence.TransactionModel{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
