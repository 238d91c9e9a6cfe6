package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newReviewTestRouter(svc service.ReviewService, user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewReviewHandler(svc)
	animes := r.Group("/api/animes")
	session := r.Group("/api/reviews")
	session.Use(asUser(user))
	h.RegisterRoutes(animes, session)
	return r
}

func TestCreateReviewEndpoint(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("Create", mock.Anything, "user-1", int64(1), 8, (*string)(nil)).
		Return(&models.Review{ID: 42, UserID: "user-1", AnimeID: 1, Rating: 8,
			User: models.User{Username: "kenji"}}, nil)

	w := postJSON(newReviewTestRouter(svc, testUser()), "/api/reviews", gin.H{
		"anime_id": 1,
		"rating":   8,
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
		Rating   int    `json:"rating"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "kenji", resp.Username)
}

func TestCreateReviewEndpoint_RatingZeroAccepted(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("Create", mock.Anything, "user-1", int64(1), 0, (*string)(nil)).
		Return(&models.Review{ID: 43, UserID: "user-1", AnimeID: 1, Rating: 0}, nil)

	w := postJSON(newReviewTestRouter(svc, testUser()), "/api/reviews", gin.H{
		"anime_id": 1,
		"rating":   0,
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateReviewEndpoint_RatingValidation(t *testing.T) {
	svc := new(mockReviewService)
	r := newReviewTestRouter(svc, testUser())

	for _, rating := range []int{-1, 11} {
		w := postJSON(r, "/api/reviews", gin.H{"anime_id": 1, "rating": rating})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReviewEndpoint_Duplicate(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("Create", mock.Anything, "user-1", int64(1), 8, (*string)(nil)).
		Return(nil, service.ErrDuplicateReview)

	w := postJSON(newReviewTestRouter(svc, testUser()), "/api/reviews", gin.H{
		"anime_id": 1,
		"rating":   8,
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateReviewEndpoint_NotOwner(t *testing.T) {
	svc := new(mockReviewService)
	rating := 5
	svc.On("Update", mock.Anything, "user-1", int64(9), &rating, (*string)(nil)).
		Return(nil, service.ErrNotReviewOwner)

	payload, _ := json.Marshal(gin.H{"rating": 5})
	req := httptest.NewRequest(http.MethodPut, "/api/reviews/9", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newReviewTestRouter(svc, testUser()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteReviewEndpoint_AdminFlagFromRole(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("Delete", mock.Anything, "admin-1", true, int64(9)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/reviews/9", nil)
	w := httptest.NewRecorder()
	newReviewTestRouter(svc, testAdmin()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestListReviewsEndpoint(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("ListByAnime", mock.Anything, int64(1), 1, 20).
		Return([]models.Review{
			{ID: 1, Rating: 8, User: models.User{Username: "kenji"}},
			{ID: 2, Rating: 6, User: models.User{Username: "aya"}},
		}, int64(2), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/animes/1/reviews", nil)
	w := httptest.NewRecorder()
	newReviewTestRouter(svc, testUser()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data       []json.RawMessage `json:"data"`
		Total      int               `json:"total"`
		TotalPages int               `json:"total_pages"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 2, resp.Total)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestListReviewsEndpoint_UnknownAnime(t *testing.T) {
	svc := new(mockReviewService)
	svc.On("ListByAnime", mock.Anything, int64(404), 1, 20).
		Return(nil, int64(0), service.ErrAnimeNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/animes/404/reviews", nil)
	w := httptest.NewRecorder()
	newReviewTestRouter(svc, testUser()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
