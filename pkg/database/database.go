package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sefazor/photomap-backend/internal/config"
	"github.com/sefazor/photomap-backend/internal/models"
)

// New opens the catalog database. DATABASE_URL selects postgres; otherwise a
// local sqlite file is used.
func New(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.Database.URL != "" {
		db, err = gorm.Open(postgres.Open(cfg.Database.URL), gormCfg)
	} else {
		// WAL keeps readers unblocked; busy_timeout makes the driver wait for
		// the writer lock instead of failing immediately.
		dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000", cfg.Database.SQLitePath)
		db, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Database.URL == "" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// Single writer on the single sqlite file. The pipelines assume the
		// store serializes writers.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&models.PhotoRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
