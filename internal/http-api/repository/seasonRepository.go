package repository

import (
	"context"
	"fmt"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

type SeasonRepository interface {
	Create(ctx context.Context, s *models.Season) error
	GetByID(ctx context.Context, id int64) (*models.Season, error)
	Update(ctx context.Context, s *models.Season) error
	Delete(ctx context.Context, id int64) error
	ListByAnime(ctx context.Context, animeID int64) ([]models.Season, error)
}

type seasonRepository struct {
	db *gorm.DB
}

func NewSeasonRepository(db *gorm.DB) SeasonRepository {
	return &seasonRepository{db: db}
}

func (r *seasonRepository) Create(ctx context.Context, s *models.Season) error {
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("create season: %w", translateError(err))
	}
	return nil
}

func (r *seasonRepository) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	var s models.Season
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *seasonRepository) Update(ctx context.Context, s *models.Season) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return fmt.Errorf("update season: %w", translateError(err))
	}
	return nil
}

func (r *seasonRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Season{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete season: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *seasonRepository) ListByAnime(ctx context.Context, animeID int64) ([]models.Season, error) {
	var list []models.Season
	if err := r.db.WithContext(ctx).
		Where("anime_id = ?", animeID).
		Order("number asc").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	return list, nil
}
