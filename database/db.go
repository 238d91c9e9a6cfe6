package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"animehub/internal/config"
	"animehub/internal/http-api/models"
)

func ConnectDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.IsDevelopment() {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify the connection
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		// close the handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run migrations
	if err := runMigrations(db); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB) error {
	// Join table registered explicitly so the (anime_id, genre_id) pair gets
	// its own unique index.
	if err := db.SetupJoinTable(&models.Anime{}, "Genres", &models.AnimeGenre{}); err != nil {
		return fmt.Errorf("failed to set up join table: %w", err)
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Genre{},
		&models.Anime{},
		&models.Season{},
		&models.Review{},
		&models.LibraryEntry{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
	)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
