package dto

import (
	"time"

	"animehub/internal/http-api/models"
)

// CreateReviewDTO for posting a review. Rating is a pointer so a legitimate
// 0 survives the required check.
type CreateReviewDTO struct {
	AnimeID int64   `json:"anime_id" binding:"required"`
	Rating  *int    `json:"rating" binding:"required,min=0,max=10"`
	Comment *string `json:"comment,omitempty"`
}

// UpdateReviewDTO for editing a review (partial)
type UpdateReviewDTO struct {
	Rating  *int    `json:"rating,omitempty" binding:"omitempty,min=0,max=10"`
	Comment *string `json:"comment,omitempty"`
}

// ReviewResponse for returning review information
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToReviewResponse converts a Review model to ReviewResponse DTO
func FromModelToReviewResponse(review *models.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:        review.ID,
		Username:  review.User.Username,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
		UpdatedAt: review.UpdatedAt,
	}
}

// PaginatedReviewResponse for returning paginated reviews
type PaginatedReviewResponse struct {
	Data       []ReviewResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

// NewPaginatedReviewResponse creates a paginated review response
func NewPaginatedReviewResponse(data []ReviewResponse, total, page, pageSize int) *PaginatedReviewResponse {
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	return &PaginatedReviewResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}
