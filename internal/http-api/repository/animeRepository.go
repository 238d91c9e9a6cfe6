package repository

import (
	"context"
	"fmt"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

// AnimeFilter captures the public list parameters. An empty Status means no
// moderation restriction (admin listing); public callers always set APPROVED.
type AnimeFilter struct {
	Title    string
	Genre    string
	Status   string
	Sort     string // "recent" (default) or "rating"
	Page     int
	PageSize int
}

type AnimeRepository interface {
	GetAll(ctx context.Context, f AnimeFilter) ([]models.Anime, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Anime, error)
	Create(ctx context.Context, a *models.Anime, genreIDs []int64) error
	Update(ctx context.Context, a *models.Anime) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	ReplaceGenres(ctx context.Context, animeID int64, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

type animeRepository struct {
	db *gorm.DB
}

func NewAnimeRepository(db *gorm.DB) AnimeRepository {
	return &animeRepository{db: db}
}

// applyFilter builds the filtered query. Built twice (count + fetch) because
// GORM chains are single-use.
func (r *animeRepository) applyFilter(ctx context.Context, f AnimeFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&models.Anime{})
	if f.Status != "" {
		db = db.Where("animes.status = ?", f.Status)
	}
	if f.Title != "" {
		db = db.Where("animes.title ILIKE ?", "%"+f.Title+"%")
	}
	if f.Genre != "" {
		db = db.
			Joins("JOIN anime_genres ag ON ag.anime_id = animes.id").
			Joins("JOIN genres g ON g.id = ag.genre_id").
			Where("g.name ILIKE ?", "%"+f.Genre+"%")
	}
	return db
}

func (r *animeRepository) GetAll(ctx context.Context, f AnimeFilter) ([]models.Anime, int64, error) {
	var list []models.Anime
	var total int64

	// Count total records (distinct: the genre join can fan out rows)
	if err := r.applyFilter(ctx, f).Distinct("animes.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "animes.created_at desc"
	if f.Sort == "rating" {
		order = "animes.average_rating desc"
	}

	offset := (f.Page - 1) * f.PageSize

	if err := r.applyFilter(ctx, f).
		Distinct("animes.*").
		Preload("Genres").
		Order(order).
		Limit(f.PageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *animeRepository) GetByID(ctx context.Context, id int64) (*models.Anime, error) {
	var a models.Anime
	if err := r.db.WithContext(ctx).
		Preload("Genres").
		Preload("Seasons", func(db *gorm.DB) *gorm.DB { return db.Order("seasons.number asc") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.created_at desc") }).
		Preload("Reviews.User").
		First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *animeRepository) Create(ctx context.Context, a *models.Anime, genreIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		if len(genreIDs) == 0 {
			return nil
		}
		genres := make([]models.Genre, 0, len(genreIDs))
		for _, id := range genreIDs {
			genres = append(genres, models.Genre{ID: id})
		}
		return tx.Model(a).Association("Genres").Append(&genres)
	})
	if err != nil {
		return fmt.Errorf("create anime: %w", translateError(err))
	}
	// GORM will populate a.ID and a.CreatedAt
	return nil
}

func (r *animeRepository) Update(ctx context.Context, a *models.Anime) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return fmt.Errorf("update anime: %w", translateError(err))
	}
	return nil
}

func (r *animeRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Anime{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update anime status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *animeRepository) ReplaceGenres(ctx context.Context, animeID int64, genreIDs []int64) error {
	tx := r.db.WithContext(ctx).Begin()
	var a models.Anime
	if err := tx.First(&a, animeID).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("anime not found: %w", err)
	}
	genres := make([]models.Genre, 0, len(genreIDs))
	for _, id := range genreIDs {
		genres = append(genres, models.Genre{ID: id})
	}
	if err := tx.Model(&a).Association("Genres").Replace(&genres); err != nil {
		tx.Rollback()
		return fmt.Errorf("replace genres: %w", err)
	}
	return tx.Commit().Error
}

func (r *animeRepository) Delete(ctx context.Context, id int64) error {
	// Seasons, reviews, library entries and join rows go with the anime
	// through the FK cascade rules, not application logic.
	result := r.db.WithContext(ctx).Delete(&models.Anime{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete anime: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
