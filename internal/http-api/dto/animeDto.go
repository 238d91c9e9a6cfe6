package dto

import (
	"animehub/internal/http-api/models"
	"animehub/internal/ingestion/jikan"
)

// CreateAnimeDTO used for POST /api/admin/animes and POST /api/animes/submissions.
// Bound from multipart form fields; the poster file rides alongside.
type CreateAnimeDTO struct {
	Title      string  `form:"title" binding:"required"`
	Synopsis   string  `form:"synopsis" binding:"required"`
	Year       int     `form:"year" binding:"required,min=1900"`
	Studio     *string `form:"studio"`
	BannerURL  *string `form:"banner_url" binding:"omitempty,url"`
	ExternalID *int64  `form:"external_id"`
	GenreIDs   []int64 `form:"genre_ids" binding:"required,min=1"`
}

// UpdateAnimeDTO used for PUT /api/admin/animes/:id (partial updates allowed)
type UpdateAnimeDTO struct {
	Title     *string `form:"title"`
	Synopsis  *string `form:"synopsis"`
	Year      *int    `form:"year" binding:"omitempty,min=1900"`
	Studio    *string `form:"studio"`
	BannerURL *string `form:"banner_url" binding:"omitempty,url"`
	GenreIDs  []int64 `form:"genre_ids"`
}

// ModerationDTO used for PUT /api/admin/animes/:id/moderation
type ModerationDTO struct {
	Decision string `json:"decision" binding:"required"`
}

// Converters
func (d CreateAnimeDTO) ToModel() models.Anime {
	return models.Anime{
		Title:      d.Title,
		Synopsis:   d.Synopsis,
		Year:       d.Year,
		Studio:     d.Studio,
		BannerURL:  d.BannerURL,
		ExternalID: d.ExternalID,
	}
}

func (d UpdateAnimeDTO) ApplyTo(a *models.Anime) {
	if d.Title != nil {
		a.Title = *d.Title
	}
	if d.Synopsis != nil {
		a.Synopsis = *d.Synopsis
	}
	if d.Year != nil {
		a.Year = *d.Year
	}
	if d.Studio != nil {
		a.Studio = d.Studio
	}
	if d.BannerURL != nil {
		a.BannerURL = d.BannerURL
	}
}

// AnimeDetailResponse is a catalog entry plus optional enrichment
type AnimeDetailResponse struct {
	Anime  *models.Anime      `json:"anime"`
	Videos []jikan.PromoVideo `json:"videos,omitempty"`
}

// PaginatedAnimeResponse for returning paginated catalog pages
type PaginatedAnimeResponse struct {
	Data       []models.Anime `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"total_pages"`
}

// NewPaginatedAnimeResponse creates a paginated catalog response
func NewPaginatedAnimeResponse(data []models.Anime, total, page, limit int) *PaginatedAnimeResponse {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	return &PaginatedAnimeResponse{
		Data:       data,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
