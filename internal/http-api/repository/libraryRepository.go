package repository

import (
	"context"
	"fmt"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

type LibraryRepository interface {
	Add(ctx context.Context, entry *models.LibraryEntry) error
	GetByID(ctx context.Context, id int64) (*models.LibraryEntry, error)
	Update(ctx context.Context, entry *models.LibraryEntry) error
	Remove(ctx context.Context, id int64) error
	ListByUser(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error)
	Exists(ctx context.Context, userID string, seasonID int64) (bool, error)
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Add(ctx context.Context, entry *models.LibraryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("add to library: %w", translateError(err))
	}
	return nil
}

func (r *libraryRepository) GetByID(ctx context.Context, id int64) (*models.LibraryEntry, error) {
	var entry models.LibraryEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *libraryRepository) Update(ctx context.Context, entry *models.LibraryEntry) error {
	if err := r.db.WithContext(ctx).Save(entry).Error; err != nil {
		return fmt.Errorf("update library entry: %w", err)
	}
	return nil
}

func (r *libraryRepository) Remove(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.LibraryEntry{}, id)
	if result.Error != nil {
		return fmt.Errorf("remove from library: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *libraryRepository) ListByUser(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error) {
	var library []models.LibraryEntry

	db := r.db.WithContext(ctx).
		Preload("Season").
		Preload("Season.Anime").
		Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	if err := db.Order("updated_at DESC").Find(&library).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}

	return library, nil
}

func (r *libraryRepository) Exists(ctx context.Context, userID string, seasonID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND season_id = ?", userID, seasonID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
