package config

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "realestate-crm.com/realestate-crm/internal/models"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// OpenDatabase connects to the configured store. SQLite connections get
// foreign key enforcement switched on.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(withForeignKeys(dsn))
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func withForeignKeys(dsn string) string {
	sep := "?"
	for _, r := range dsn {
		if r == '?' {
			sep = "&"
			break
		}
	}
	return dsn + sep + "_foreign_keys=on"
}

// Migrate creates or updates the schema of every entity and join table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Collaborator{},
		&model.Property{},
		&model.Client{},
		&model.Task{},
	)
}

// NewDatabaseClient opens and migrates the store, aborting on failure.
func NewDatabaseClient(cfg Config) *gorm.DB {
	db, err := OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	return db
}
