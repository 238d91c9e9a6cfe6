package handler

import (
	"context"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// Service mocks plus a test middleware that stands in for the real auth
// chain by injecting a resolved user.

type mockAuthService struct{ mock.Mock }

func (m *mockAuthService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, email, password)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	args := m.Called(ctx, email, password)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	return user, args.String(1), args.Error(2)
}

func (m *mockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

func (m *mockAuthService) ConfirmEmail(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

type mockReviewService struct{ mock.Mock }

func (m *mockReviewService) Create(ctx context.Context, userID string, animeID int64, rating int, comment *string) (*models.Review, error) {
	args := m.Called(ctx, userID, animeID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewService) Update(ctx context.Context, userID string, reviewID int64, rating *int, comment *string) (*models.Review, error) {
	args := m.Called(ctx, userID, reviewID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *mockReviewService) Delete(ctx context.Context, userID string, isAdmin bool, reviewID int64) error {
	return m.Called(ctx, userID, isAdmin, reviewID).Error(0)
}

func (m *mockReviewService) ListByAnime(ctx context.Context, animeID int64, page, pageSize int) ([]models.Review, int64, error) {
	args := m.Called(ctx, animeID, page, pageSize)
	var reviews []models.Review
	if args.Get(0) != nil {
		reviews = args.Get(0).([]models.Review)
	}
	return reviews, args.Get(1).(int64), args.Error(2)
}

type mockLibraryService struct{ mock.Mock }

func (m *mockLibraryService) Add(ctx context.Context, userID string, seasonID int64, status string, progress int) (*models.LibraryEntry, error) {
	args := m.Called(ctx, userID, seasonID, status, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryEntry), args.Error(1)
}

func (m *mockLibraryService) Update(ctx context.Context, userID string, entryID int64, status *string, progress *int) (*models.LibraryEntry, error) {
	args := m.Called(ctx, userID, entryID, status, progress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryEntry), args.Error(1)
}

func (m *mockLibraryService) Remove(ctx context.Context, userID string, entryID int64) error {
	return m.Called(ctx, userID, entryID).Error(0)
}

func (m *mockLibraryService) List(ctx context.Context, userID string, status string) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

// asUser injects a resolved user the way the auth middleware would.
func asUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

func testUser() *models.User {
	return &models.User{ID: "user-1", Username: "kenji", Role: models.RoleUser}
}

func testAdmin() *models.User {
	return &models.User{ID: "admin-1", Username: "mod", Role: models.RoleAdmin}
}
