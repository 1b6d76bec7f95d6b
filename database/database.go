package database

import (
	"fmt"
	"time"

	"github.com/yeremiapane/attendance-portal/config"
	"github.com/yeremiapane/attendance-portal/models"
	"github.com/yeremiapane/attendance-portal/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// newGormLogger routes gorm's SQL logging through InfoLogger.
func newGormLogger(level logger.LogLevel) logger.Interface {
	return logger.New(utils.InfoLogger, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Open connects using the configured driver and verifies the connection.
// Foreign keys are not created during migration: user references may dangle.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dial, err := dialector(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if cfg.GinMode == "debug" {
		level = logger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:                                   newGormLogger(level),
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc:                                  func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	if cfg.DBDriver != "sqlite" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	utils.InfoLogger.WithField("driver", cfg.DBDriver).Info("Connected to database")
	return db, nil
}

// Models lists every table owned by the portal, in migration order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Attendance{},
		&models.Complaint{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	for _, m := range Models() {
		if !db.Migrator().HasTable(m) {
			return fmt.Errorf("auto migrate: table for %T missing", m)
		}
	}
	utils.InfoLogger.Info("AutoMigrate completed.")
	return nil
}
