// Package database owns the GORM connection and schema migration.
package database

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tvonkoch-eng/D8-sub000/internal/config"
	"github.com/tvonkoch-eng/D8-sub000/internal/logger"
	"github.com/tvonkoch-eng/D8-sub000/internal/models"
)

type DB struct {
	*gorm.DB
}

func Connect(cfg *config.Config) (*DB, error) {
	log := logger.GetLogger("database")

	logLevel := gormlogger.Silent
	if cfg.Server.Env == "development" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DB.URL()), &gorm.Config{
		Logger:                                   gormlogger.Default.LogMode(logLevel),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.Use(&MetricsPlugin{}); err != nil {
		log.Warnf("failed to register metrics plugin: %v", err)
	}

	sqlDB, err := db.DB()
	if err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	log.Infof("connected to %s:%s/%s", cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName)
	return &DB{db}, nil
}

// Migrate runs AutoMigrate for all models
func Migrate(db *DB) error {
	return db.AutoMigrate(
		&models.Venue{},
		&models.IdeaSet{},
	)
}
