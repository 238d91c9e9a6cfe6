package service

import (
	"context"
	"errors"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrDuplicateReview = errors.New("review already exists for this anime")
	ErrNotReviewOwner  = errors.New("not the owner of this review")
	ErrInvalidRating   = errors.New("rating must be between 0 and 10")
)

type ReviewService interface {
	Create(ctx context.Context, userID string, animeID int64, rating int, comment *string) (*models.Review, error)
	Update(ctx context.Context, userID string, reviewID int64, rating *int, comment *string) (*models.Review, error)
	Delete(ctx context.Context, userID string, isAdmin bool, reviewID int64) error
	ListByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	animeRepo  repository.AnimeRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, animeRepo repository.AnimeRepository) ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		animeRepo:  animeRepo,
	}
}

// Create posts a review on an APPROVED anime. One review per (user, anime):
// the pre-check gives the friendly conflict, the unique index catches the
// race. The anime's mean rating is recomputed before returning.
func (s *reviewService) Create(ctx context.Context, userID string, animeID int64, rating int, comment *string) (*models.Review, error) {
	if rating < 0 || rating > 10 {
		return nil, ErrInvalidRating
	}

	anime, err := s.animeRepo.GetByID(ctx, animeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnimeNotFound
		}
		return nil, err
	}
	// a title hidden by moderation is not reviewable, and reads as missing
	if anime.Status != models.ModerationApproved {
		return nil, ErrAnimeNotFound
	}

	if _, err := s.reviewRepo.GetByUserAndAnime(ctx, userID, animeID); err == nil {
		return nil, ErrDuplicateReview
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		UserID:  userID,
		AnimeID: animeID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}

	if _, err := s.reviewRepo.RecomputeAnimeRating(ctx, animeID); err != nil {
		return nil, err
	}

	// Reload with user data
	return s.reviewRepo.GetByID(ctx, review.ID)
}

// Update edits a review's rating and/or comment. Owner only.
func (s *reviewService) Update(ctx context.Context, userID string, reviewID int64, rating *int, comment *string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrNotReviewOwner
	}

	if rating != nil {
		if *rating < 0 || *rating > 10 {
			return nil, ErrInvalidRating
		}
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = comment
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.RecomputeAnimeRating(ctx, review.AnimeID); err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes a review; owners and admins may delete. The anime id is
// captured before deletion so the recomputation targets the right title.
func (s *reviewService) Delete(ctx context.Context, userID string, isAdmin bool, reviewID int64) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if review.UserID != userID && !isAdmin {
		return ErrNotReviewOwner
	}

	animeID := review.AnimeID
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	_, err = s.reviewRepo.RecomputeAnimeRating(ctx, animeID)
	return err
}

func (s *reviewService) ListByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error) {
	if _, err := s.animeRepo.GetByID(ctx, animeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrAnimeNotFound
		}
		return nil, 0, err
	}
	return s.reviewRepo.GetByAnime(ctx, animeID, page, pageSize)
}
