package repository

import (
	"context"
	"fmt"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

type GenreRepository interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.Genre, error)
	FirstOrCreateByName(ctx context.Context, name string) (*models.Genre, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) GetAll(ctx context.Context) ([]models.Genre, error) {
	var list []models.Genre
	if err := r.db.WithContext(ctx).Order("name asc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres: %w", err)
	}
	return list, nil
}

func (r *genreRepository) GetByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	var list []models.Genre
	if len(ids) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get genres by ids: %w", err)
	}
	return list, nil
}

// FirstOrCreateByName upserts a genre by its unique name. Used during
// catalog population and admin entry so tags are created on demand.
func (r *genreRepository) FirstOrCreateByName(ctx context.Context, name string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).
		Where(models.Genre{Name: name}).
		FirstOrCreate(&g).Error; err != nil {
		return nil, fmt.Errorf("upsert genre: %w", translateError(err))
	}
	return &g, nil
}
