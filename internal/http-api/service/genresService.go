package service

import (
	"context"
	"errors"
	"strings"

	"animehub/internal/http-api/models"
	"animehub/internal/http-api/repository"
)

var ErrGenreNameRequired = errors.New("genre name required")

type GenreService interface {
	GetAll(ctx context.Context) ([]models.Genre, error)
	Upsert(ctx context.Context, name string) (*models.Genre, error)
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(r repository.GenreRepository) GenreService {
	return &genreService{repo: r}
}

func (s *genreService) GetAll(ctx context.Context) ([]models.Genre, error) {
	return s.repo.GetAll(ctx)
}

func (s *genreService) Upsert(ctx context.Context, name string) (*models.Genre, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGenreNameRequired
	}
	return s.repo.FirstOrCreateByName(ctx, name)
}
