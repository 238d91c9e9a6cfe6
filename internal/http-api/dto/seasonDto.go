package dto

import "animehub/internal/http-api/models"

// CreateSeasonDTO used for POST /api/admin/animes/:id/seasons
type CreateSeasonDTO struct {
	Number   int     `json:"number" binding:"required,min=1"`
	Episodes int     `json:"episodes" binding:"omitempty,min=0"`
	Year     int     `json:"year,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// UpdateSeasonDTO used for PUT /api/admin/seasons/:id (partial)
type UpdateSeasonDTO struct {
	Number   *int    `json:"number,omitempty" binding:"omitempty,min=1"`
	Episodes *int    `json:"episodes,omitempty" binding:"omitempty,min=0"`
	Year     *int    `json:"year,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (d CreateSeasonDTO) ToModel() models.Season {
	return models.Season{
		Number:   d.Number,
		Episodes: d.Episodes,
		Year:     d.Year,
		Status:   d.Status,
	}
}

func (d UpdateSeasonDTO) ApplyTo(s *models.Season) {
	if d.Number != nil {
		s.Number = *d.Number
	}
	if d.Episodes != nil {
		s.Episodes = *d.Episodes
	}
	if d.Year != nil {
		s.Year = *d.Year
	}
	if d.Status != nil {
		s.Status = d.Status
	}
}
