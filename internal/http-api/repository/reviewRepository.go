package repository

import (
	"context"
	"math"

	"animehub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByUserAndAnime(ctx context.Context, userID string, animeID int64) (*models.Review, error)
	GetByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error)
	RecomputeAnimeRating(ctx context.Context, animeID int64) (float64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateError(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("User").First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByUserAndAnime retrieves a user's review for a specific anime
func (r *reviewRepository) GetByUserAndAnime(ctx context.Context, userID string, animeID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND anime_id = ?", userID, animeID).
		Preload("User").
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// GetByAnime retrieves all reviews for a specific anime with pagination
func (r *reviewRepository) GetByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("anime_id = ?", animeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("anime_id = ?", animeID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// RecomputeAnimeRating recomputes the denormalized mean rating for an anime
// and persists it. The aggregate read and the write run in one transaction
// so two concurrent review writers cannot leave a stale mean behind. Returns
// the stored value: the arithmetic mean rounded half-up to one decimal
// place, or exactly 0 when the anime has no reviews.
func (r *reviewRepository) RecomputeAnimeRating(ctx context.Context, animeID int64) (float64, error) {
	var mean float64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var avg struct {
			Average float64
		}
		if err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) as average").
			Where("anime_id = ?", animeID).
			Scan(&avg).Error; err != nil {
			return err
		}
		mean = roundToTenth(avg.Average)
		return tx.Model(&models.Anime{}).
			Where("id = ?", animeID).
			Update("average_rating", mean).Error
	})
	if err != nil {
		return 0, err
	}
	return mean, nil
}

// roundToTenth rounds half-up on the tenths digit. Ratings are never
// negative so math.Round's half-away-from-zero matches half-up.
func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
