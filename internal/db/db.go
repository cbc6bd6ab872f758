package db

import (
	"time"

	"auction-settlement/internal/config"
	model "auction-settlement/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the sqlite database and tunes the underlying pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	}

	conn, err := gorm.Open(sqlite.Open(cfg.DBPath), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(10)

	return conn, nil
}

// Migrate creates or updates the marketplace tables.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(&model.User{}, &model.Auction{}, &model.Bid{})
}
