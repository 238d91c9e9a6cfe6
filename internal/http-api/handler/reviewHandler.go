package handler

import (
	"errors"
	"net/http"
	"strconv"

	"animehub/internal/http-api/dto"
	"animehub/internal/http-api/middleware"
	"animehub/internal/http-api/models"
	"animehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes wires review routes: listing is public under the catalog,
// writing requires a session.
func (h *ReviewHandler) RegisterRoutes(animes, session *gin.RouterGroup) {
	animes.GET("/:id/reviews", h.ListByAnime)

	session.POST("", h.Create)
	session.PUT("/:id", h.Update)
	session.DELETE("/:id", h.Delete)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), user.ID, req.AnimeID, *req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAnimeNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	var req dto.UpdateReviewDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), user.ID, reviewID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update review"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToReviewResponse(review))
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reviewID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}

	err = h.reviewService.Delete(c.Request.Context(), user.ID, user.Role == models.RoleAdmin, reviewID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete review"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// ListByAnime handles GET /api/animes/:id/reviews with page/page_size query
// parameters, newest first.
func (h *ReviewHandler) ListByAnime(c *gin.Context) {
	animeID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	reviews, total, err := h.reviewService.ListByAnime(c.Request.Context(), animeID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrAnimeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}

	responses := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	c.JSON(http.StatusOK, dto.NewPaginatedReviewResponse(responses, int(total), page, pageSize))
}
