package db

import (
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"instantcredit-backend/internal/domain/application"
	"instantcredit-backend/internal/domain/profile"
	"instantcredit-backend/internal/domain/user"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Duplicate-key errors must map to gorm.ErrDuplicatedKey for the
		// repositories' ErrEmailTaken translation.
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Println("gorm: connected")
	return db, nil
}

// Migrate creates or updates the schema for every persistent entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&profile.CustomerProfile{},
		&application.CreditApplication{},
		&application.Document{},
	)
}
