package service

import (
	"context"
	"testing"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newReviewServiceWithMocks() (ReviewService, *mockReviewRepo, *mockAnimeRepo) {
	reviewRepo := new(mockReviewRepo)
	animeRepo := new(mockAnimeRepo)
	return NewReviewService(reviewRepo, animeRepo), reviewRepo, animeRepo
}

func approvedAnime(id int64) *models.Anime {
	return &models.Anime{ID: id, Title: "Steel Alchemist", Status: models.ModerationApproved}
}

func TestReviewCreate_RecomputesRating(t *testing.T) {
	svc, reviewRepo, animeRepo := newReviewServiceWithMocks()
	ctx := context.Background()

	animeRepo.On("GetByID", ctx, int64(1)).Return(approvedAnime(1), nil)
	reviewRepo.On("GetByUserAndAnime", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Review).ID = 42
	}).Return(nil)
	reviewRepo.On("RecomputeAnimeRating", ctx, int64(1)).Return(8.0, nil)
	reviewRepo.On("GetByID", ctx, int64(42)).Return(&models.Review{ID: 42, UserID: "user-1", AnimeID: 1, Rating: 8}, nil)

	review, err := svc.Create(ctx, "user-1", 1, 8, nil)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), review.ID)
	reviewRepo.AssertCalled(t, "RecomputeAnimeRating", ctx, int64(1))
}

func TestReviewCreate_RatingZeroIsValid(t *testing.T) {
	svc, reviewRepo, animeRepo := newReviewServiceWithMocks()
	ctx := context.Background()

	animeRepo.On("GetByID", ctx, int64(1)).Return(approvedAnime(1), nil)
	reviewRepo.On("GetByUserAndAnime", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)
	reviewRepo.On("RecomputeAnimeRating", ctx, int64(1)).Return(0.0, nil)
	reviewRepo.On("GetByID", ctx, mock.Anything).Return(&models.Review{UserID: "user-1", AnimeID: 1}, nil)

	_, err := svc.Create(ctx, "user-1", 1, 0, nil)
	assert.NoError(t, err)
}

func TestReviewCreate_RatingOutOfRange(t *testing.T) {
	svc, _, _ := newReviewServiceWithMocks()

	_, err := svc.Create(context.Background(), "user-1", 1, 11, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Create(context.Background(), "user-1", 1, -1, nil)
	assert.ErrorIs(t, err, ErrInvalidRating)
}

func TestReviewCreate_PendingAnimeReadsAsNotFound(t *testing.T) {
	svc, _, animeRepo := newReviewServiceWithMocks()
	ctx := context.Background()

	animeRepo.On("GetByID", ctx, int64(2)).
		Return(&models.Anime{ID: 2, Status: models.ModerationPending}, nil)

	_, err := svc.Create(ctx, "user-1", 2, 7, nil)
	assert.ErrorIs(t, err, ErrAnimeNotFound)
}

func TestReviewCreate_Duplicate(t *testing.T) {
	svc, reviewRepo, animeRepo := newReviewServiceWithMocks()
	ctx := context.Background()

	animeRepo.On("GetByID", ctx, int64(1)).Return(approvedAnime(1), nil)
	reviewRepo.On("GetByUserAndAnime", ctx, "user-1", int64(1)).
		Return(&models.Review{ID: 7, UserID: "user-1", AnimeID: 1}, nil)

	_, err := svc.Create(ctx, "user-1", 1, 6, nil)
	assert.ErrorIs(t, err, ErrDuplicateReview)
	reviewRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewCreate_DuplicateRaceCaughtByStore(t *testing.T) {
	svc, reviewRepo, animeRepo := newReviewServiceWithMocks()
	ctx := context.Background()

	animeRepo.On("GetByID", ctx, int64(1)).Return(approvedAnime(1), nil)
	// the pre-check misses, the unique index catches it
	reviewRepo.On("GetByUserAndAnime", ctx, "user-1", int64(1)).Return(nil, gorm.ErrRecordNotFound)
	reviewRepo.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicate)

	_, err := svc.Create(ctx, "user-1", 1, 6, nil)
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestReviewUpdate_OwnerOnly(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("GetByID", ctx, int64(9)).
		Return(&models.Review{ID: 9, UserID: "owner", AnimeID: 3, Rating: 5}, nil)

	rating := 8
	_, err := svc.Update(ctx, "someone-else", 9, &rating, nil)
	assert.ErrorIs(t, err, ErrNotReviewOwner)
}

func TestReviewUpdate_RecomputesRating(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("GetByID", ctx, int64(9)).
		Return(&models.Review{ID: 9, UserID: "owner", AnimeID: 3, Rating: 5}, nil)
	reviewRepo.On("Update", ctx, mock.AnythingOfType("*models.Review")).Return(nil)
	reviewRepo.On("RecomputeAnimeRating", ctx, int64(3)).Return(6.5, nil)

	rating := 8
	review, err := svc.Update(ctx, "owner", 9, &rating, nil)

	assert.NoError(t, err)
	assert.Equal(t, 8, review.Rating)
	reviewRepo.AssertCalled(t, "RecomputeAnimeRating", ctx, int64(3))
}

func TestReviewDelete_AdminMayDeleteOthers(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("GetByID", ctx, int64(9)).
		Return(&models.Review{ID: 9, UserID: "owner", AnimeID: 3}, nil)
	reviewRepo.On("Delete", ctx, int64(9)).Return(nil)
	reviewRepo.On("RecomputeAnimeRating", ctx, int64(3)).Return(0.0, nil)

	err := svc.Delete(ctx, "admin-user", true, 9)
	assert.NoError(t, err)
	reviewRepo.AssertCalled(t, "RecomputeAnimeRating", ctx, int64(3))
}

func TestReviewDelete_NonOwnerForbidden(t *testing.T) {
	svc, reviewRepo, _ := newReviewServiceWithMocks()
	ctx := context.Background()

	reviewRepo.On("GetByID", ctx, int64(9)).
		Return(&models.Review{ID: 9, UserID: "owner", AnimeID: 3}, nil)

	err := svc.Delete(ctx, "someone-else", false, 9)
	assert.ErrorIs(t, err, ErrNotReviewOwner)
	reviewRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
