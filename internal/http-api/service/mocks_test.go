package service

import (
	"context"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"
	"animehub/internal/ingestion/jikan"

	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the repository and collaborator interfaces.

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type mockAnimeRepo struct{ mock.Mock }

func (m *mockAnimeRepo) GetAll(ctx context.Context, f repository.AnimeFilter) ([]models.Anime, int64, error) {
	args := m.Called(ctx, f)
	var animes []models.Anime
	if args.Get(0) != nil {
		animes = args.Get(0).([]models.Anime)
	}
	return animes, args.Get(1).(int64), args.Error(2)
}

func (m *mockAnimeRepo) GetByID(ctx context.Context, id int64) (*models.Anime, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Anime), args.Error(1)
}

func (m *mockAnimeRepo) Create(ctx context.Context, a *models.Anime, genreIDs []int64) error {
	return m.Called(ctx, a, genreIDs).Error(0)
}

func (m *mockAnimeRepo) Update(ctx context.Context, a *models.Anime) error {
	return m.Called(ctx, a).Error(0)
}

func (m *mockAnimeRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockAnimeRepo) ReplaceGenres(ctx context.Context, animeID int64, genreIDs []int64) error {
	return m.Called(ctx, animeID, genreIDs).Error(0)
}

func (m *mockAnimeRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockGenreRepo struct{ mock.Mock }

func (m *mockGenreRepo) GetAll(ctx context.Context) ([]models.Genre, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *mockGenreRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Genre, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *mockGenreRepo) FirstOrCreateByName(ctx context.Context, name string) (*models.Genre, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

type mockSeasonRepo struct{ mock.Mock }

func (m *mockSeasonRepo) Create(ctx context.Context, s *models.Season) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSeasonRepo) GetByID(ctx context.Context, id int64) (*models.Season, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Season), args.Error(1)
}

func (m *mockSeasonRepo) Update(ctx context.Context, s *models.Season) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSeasonRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockSeasonRepo) ListByAnime(ctx context.Context, animeID int64) ([]models.Season, error) {
	args := m.Called(ctx, animeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Season), args.Error(1)
}

type mockReviewRepo struct{ mock.Mock }

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Update(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockReviewRepo) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) GetByUserAndAnime(ctx context.Context, userID string, animeID int64) (*models.Review, error) {
	args := m.Called(ctx, userID, animeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewRepo) GetByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, animeID, page, pageSize)
	var reviews []models.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]models.Review)
	}
	return reviews, args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewRepo) RecomputeAnimeRating(ctx context.Context, animeID int64) (float64, error) {
	args := m.Called(ctx, animeID)
	return args.Get(0).(float64), args.Error(1)
}

type mockLibraryRepo struct{ mock.Mock }

func (m *mockLibraryRepo) Add(ctx context.Context, entry *models.LibraryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLibraryRepo) GetByID(ctx context.Context, id int64) (*models.LibraryEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryEntry), args.Error(1)
}

func (m *mockLibraryRepo) Update(ctx context.Context, entry *models.LibraryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockLibraryRepo) Remove(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockLibraryRepo) ListByUser(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

func (m *mockLibraryRepo) Exists(ctx context.Context, userID string, seasonID int64) (bool, error) {
	args := m.Called(ctx, userID, seasonID)
	return args.Bool(0), args.Error(1)
}

type mockVerifyTokenRepo struct{ mock.Mock }

func (m *mockVerifyTokenRepo) Create(ctx context.Context, t *models.EmailVerificationToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockVerifyTokenRepo) FindByToken(ctx context.Context, token string) (*models.EmailVerificationToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EmailVerificationToken), args.Error(1)
}

func (m *mockVerifyTokenRepo) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockVerifyTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockResetTokenRepo struct{ mock.Mock }

func (m *mockResetTokenRepo) Create(ctx context.Context, t *models.PasswordResetToken) error {
	return m.Called(ctx, t).Error(0)
}

func (m *mockResetTokenRepo) FindByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PasswordResetToken), args.Error(1)
}

func (m *mockResetTokenRepo) Delete(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockResetTokenRepo) DeleteByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendVerification(ctx context.Context, to, token string) error {
	return m.Called(ctx, to, token).Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, to, token string) error {
	return m.Called(ctx, to, token).Error(0)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, data []byte, name string) (string, error) {
	args := m.Called(ctx, data, name)
	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

type mockMetadataClient struct{ mock.Mock }

func (m *mockMetadataClient) Search(ctx context.Context, query string, limit int) ([]jikan.AnimeData, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.AnimeData), args.Error(1)
}

func (m *mockMetadataClient) GetAnime(ctx context.Context, externalID int64) (*jikan.AnimeData, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jikan.AnimeData), args.Error(1)
}

func (m *mockMetadataClient) GetVideos(ctx context.Context, externalID int64) ([]jikan.PromoVideo, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]jikan.PromoVideo), args.Error(1)
}
