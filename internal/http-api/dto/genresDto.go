package dto

// CreateGenreDTO upserts a genre by name
type CreateGenreDTO struct {
	Name string `json:"name" binding:"required"`
}
